package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type ApplyLoanRequest struct {
	CustomerID      string `json:"customerId"`
	AccountNumber   string `json:"accountNumber"`
	LoanType        string `json:"loanType"`
	PrincipalAmount string `json:"principalAmount"`
	// Annual rate in percent, e.g. "12.5".
	InterestRate string `json:"interestRate"`
	TermMonths   int    `json:"termMonths"`
}

func (r ApplyLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}

	switch strings.ToUpper(strings.TrimSpace(r.LoanType)) {
	case "PERSONAL", "MORTGAGE", "AUTO", "BUSINESS", "EDUCATION":
	default:
		errs = append(errs, "loanType must be one of PERSONAL, MORTGAGE, AUTO, BUSINESS, EDUCATION")
	}

	errs = validateAmount(errs, "principalAmount", r.PrincipalAmount)

	rate := strings.TrimSpace(r.InterestRate)
	if rate == "" {
		errs = append(errs, "interestRate is required")
	} else if parsed, err := decimal.NewFromString(rate); err != nil {
		errs = append(errs, "interestRate must be numeric")
	} else if parsed.IsNegative() {
		errs = append(errs, "interestRate cannot be negative")
	}

	if r.TermMonths < 1 || r.TermMonths > 480 {
		errs = append(errs, "termMonths must be between 1 and 480, got "+strconv.Itoa(r.TermMonths))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoanActionRequest struct {
	CustomerID string `json:"customerId"`
	LoanID     string `json:"loanId"`
}

func (r LoanActionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.LoanID) == "" {
		errs = append(errs, "loanId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RepayLoanRequest struct {
	CustomerID string `json:"customerId"`
	LoanID     string `json:"loanId"`
	Amount     string `json:"amount,omitempty"`
	Channel    string `json:"channel,omitempty"`
}

func (r RepayLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.LoanID) == "" {
		errs = append(errs, "loanId is required")
	}
	// Amount is optional; empty means the scheduled monthly payment.
	if strings.TrimSpace(r.Amount) != "" {
		errs = validateAmount(errs, "amount", r.Amount)
	}
	if !validChannel(r.Channel) {
		errs = append(errs, "channel must be one of WEB, MOBILE, ATM, BRANCH, API")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoanResponse struct {
	ID               string `json:"id"`
	LoanNumber       string `json:"loanNumber"`
	AccountNumber    string `json:"accountNumber"`
	LoanType         string `json:"loanType"`
	PrincipalAmount  string `json:"principalAmount"`
	InterestRate     string `json:"interestRate"`
	TermMonths       int    `json:"termMonths"`
	MonthlyPayment   string `json:"monthlyPayment"`
	TotalInterest    string `json:"totalInterest"`
	TotalAmount      string `json:"totalAmount"`
	AmountPaid       string `json:"amountPaid"`
	BalanceRemaining string `json:"balanceRemaining"`
	Status           string `json:"status"`
	ApplicationDate  string `json:"applicationDate"`
	ApprovalDate     string `json:"approvalDate,omitempty"`
	DisbursementDate string `json:"disbursementDate,omitempty"`
	FirstPaymentDate string `json:"firstPaymentDate,omitempty"`
	MaturityDate     string `json:"maturityDate,omitempty"`
}

type LoanRepaymentResponse struct {
	PaymentNumber int    `json:"paymentNumber"`
	DueDate       string `json:"dueDate"`
	AmountDue     string `json:"amountDue"`
	AmountPaid    string `json:"amountPaid"`
	PaidDate      string `json:"paidDate,omitempty"`
	IsPaid        bool   `json:"isPaid"`
	TransactionID string `json:"transactionId,omitempty"`
}

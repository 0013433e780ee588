package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanType string

const (
	LoanTypePersonal  LoanType = "PERSONAL"
	LoanTypeMortgage  LoanType = "MORTGAGE"
	LoanTypeAuto      LoanType = "AUTO"
	LoanTypeBusiness  LoanType = "BUSINESS"
	LoanTypeEducation LoanType = "EDUCATION"
)

type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusPaid      LoanStatus = "PAID"
	LoanStatusDefaulted LoanStatus = "DEFAULTED"
	LoanStatusRejected  LoanStatus = "REJECTED"
)

type Loan struct {
	ID            string
	CustomerID    string
	AccountNumber string
	LoanNumber    string
	LoanType      LoanType

	PrincipalAmount decimal.Decimal
	InterestRate    decimal.Decimal
	TermMonths      int

	// Derived once from principal, rate and term.
	MonthlyPayment   decimal.Decimal
	TotalInterest    decimal.Decimal
	TotalAmount      decimal.Decimal
	AmountPaid       decimal.Decimal
	BalanceRemaining decimal.Decimal

	Status LoanStatus

	ApplicationDate  time.Time
	ApprovalDate     *time.Time
	DisbursementDate *time.Time
	FirstPaymentDate *time.Time
	MaturityDate     *time.Time
}

type LoanRepayment struct {
	ID            string
	LoanID        string
	PaymentNumber int
	DueDate       time.Time
	AmountDue     decimal.Decimal
	AmountPaid    decimal.Decimal
	PaidDate      *time.Time
	IsPaid        bool
	TransactionID *string
}

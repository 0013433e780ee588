package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	CustomerID  string `json:"customerId"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Currency    string `json:"currency"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.AccountName) == "" {
		errs = append(errs, "accountName is required")
	}

	accountType := strings.ToUpper(strings.TrimSpace(r.AccountType))
	switch accountType {
	case "CHECKING", "SAVINGS", "MONEY_MARKET", "BUSINESS":
	default:
		errs = append(errs, "accountType must be one of CHECKING, SAVINGS, MONEY_MARKET, BUSINESS")
	}

	ccy := strings.ToUpper(strings.TrimSpace(r.Currency))
	if ccy == "" {
		errs = append(errs, "currency is required")
	} else if len(ccy) != 3 {
		errs = append(errs, "currency must be a 3-letter code")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID                   string `json:"id"`
	CustomerID           string `json:"customerId"`
	AccountNumber        string `json:"accountNumber"`
	AccountName          string `json:"accountName"`
	AccountType          string `json:"accountType"`
	Currency             string `json:"currency"`
	Balance              string `json:"balance"`
	ACHRouting           string `json:"achRouting"`
	SwiftCode            string `json:"swiftCode"`
	BankName             string `json:"bankName"`
	Status               string `json:"status"`
	DailyWithdrawalLimit string `json:"dailyWithdrawalLimit"`
	DailyTransferLimit   string `json:"dailyTransferLimit"`
	MinimumBalance       string `json:"minimumBalance"`
	OverdraftLimit       string `json:"overdraftLimit"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

type UpdateAccountLimitsRequest struct {
	CustomerID           string `json:"customerId"`
	AccountNumber        string `json:"accountNumber"`
	AccountName          string `json:"accountName,omitempty"`
	DailyWithdrawalLimit string `json:"dailyWithdrawalLimit,omitempty"`
	DailyTransferLimit   string `json:"dailyTransferLimit,omitempty"`
}

func (r UpdateAccountLimitsRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}

	fields := map[string]string{
		"dailyWithdrawalLimit": r.DailyWithdrawalLimit,
		"dailyTransferLimit":   r.DailyTransferLimit,
	}
	provided := strings.TrimSpace(r.AccountName) != ""
	for field, value := range fields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		provided = true
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			errs = append(errs, field+" must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, field+" cannot be negative")
		}
	}
	if !provided {
		errs = append(errs, "at least one updatable field is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountActionRequest struct {
	CustomerID    string `json:"customerId"`
	AccountNumber string `json:"accountNumber"`
	// One of activate, freeze, unfreeze, close.
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

func (r AccountActionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}

	switch strings.ToLower(strings.TrimSpace(r.Action)) {
	case "activate", "freeze", "unfreeze":
	case "close":
		if strings.TrimSpace(r.Reason) == "" {
			errs = append(errs, "reason is required when closing an account")
		}
	default:
		errs = append(errs, "action must be one of activate, freeze, unfreeze, close")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

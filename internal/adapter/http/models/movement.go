package models

import (
	"errors"
	"strings"
)

type DepositRequest struct {
	UserID        string `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
	Description   string `json:"description,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}
	errs = validateAmount(errs, "amount", r.Amount)
	if !validChannel(r.Channel) {
		errs = append(errs, "channel must be one of WEB, MOBILE, ATM, BRANCH, API")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawRequest struct {
	UserID        string `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
	Description   string `json:"description,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}
	errs = validateAmount(errs, "amount", r.Amount)
	if !validChannel(r.Channel) {
		errs = append(errs, "channel must be one of WEB, MOBILE, ATM, BRANCH, API")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	UserID                   string `json:"userId"`
	AccountNumber            string `json:"accountNumber"`
	Amount                   string `json:"amount"`
	Description              string `json:"description,omitempty"`
	Channel                  string `json:"channel,omitempty"`
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber"`
	BeneficiaryName          string `json:"beneficiaryName"`
	BeneficiaryBank          string `json:"beneficiaryBank"`
	SaveBeneficiary          bool   `json:"saveBeneficiary,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if !isTenDigitAccountNumber(strings.TrimSpace(r.AccountNumber)) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}
	errs = validateAmount(errs, "amount", r.Amount)
	if strings.TrimSpace(r.BeneficiaryAccountNumber) == "" {
		errs = append(errs, "beneficiaryAccountNumber is required")
	}
	if strings.TrimSpace(r.BeneficiaryName) == "" {
		errs = append(errs, "beneficiaryName is required")
	}
	if strings.TrimSpace(r.BeneficiaryBank) == "" {
		errs = append(errs, "beneficiaryBank is required")
	}
	if !validChannel(r.Channel) {
		errs = append(errs, "channel must be one of WEB, MOBILE, ATM, BRANCH, API")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ReverseTransactionRequest struct {
	UserID        string `json:"userId"`
	TransactionID string `json:"transactionId"`
}

func (r ReverseTransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.TransactionID) == "" {
		errs = append(errs, "transactionId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	TransactionID            string `json:"transactionId"`
	AccountNumber            string `json:"accountNumber"`
	Type                     string `json:"type"`
	Status                   string `json:"status"`
	Amount                   string `json:"amount"`
	Fee                      string `json:"fee"`
	Currency                 string `json:"currency"`
	BalanceBefore            string `json:"balanceBefore"`
	BalanceAfter             string `json:"balanceAfter"`
	Description              string `json:"description,omitempty"`
	ReferenceNumber          string `json:"referenceNumber,omitempty"`
	Channel                  string `json:"channel"`
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber,omitempty"`
	BeneficiaryName          string `json:"beneficiaryName,omitempty"`
	BeneficiaryBank          string `json:"beneficiaryBank,omitempty"`
	RelatedTransactionID     string `json:"relatedTransactionId,omitempty"`
	FailureReason            string `json:"failureReason,omitempty"`
	InitiatedAt              string `json:"initiatedAt"`
	CompletedAt              string `json:"completedAt,omitempty"`
}

package models

import (
	"errors"
	"strings"
)

type CreateBeneficiaryRequest struct {
	UserID        string `json:"userId"`
	Nickname      string `json:"nickname"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
	IsFavorite    bool   `json:"isFavorite,omitempty"`
}

func (r CreateBeneficiaryRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.Nickname) == "" {
		errs = append(errs, "nickname is required")
	}
	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if strings.TrimSpace(r.AccountName) == "" {
		errs = append(errs, "accountName is required")
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, "bankName is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type BeneficiaryResponse struct {
	ID            string `json:"id"`
	Nickname      string `json:"nickname"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
	IsVerified    bool   `json:"isVerified"`
	IsFavorite    bool   `json:"isFavorite"`
	CreatedAt     string `json:"createdAt"`
	LastUsed      string `json:"lastUsed,omitempty"`
}

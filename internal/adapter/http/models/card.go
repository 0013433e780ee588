package models

import (
	"errors"
	"strings"
)

type IssueCardRequest struct {
	UserID    string `json:"userId"`
	AccountID string `json:"accountId,omitempty"`
	CardType  string `json:"cardType"`
	CardName  string `json:"cardName"`
	PIN       string `json:"pin"`
	IsVirtual bool   `json:"isVirtual,omitempty"`
}

func (r IssueCardRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}

	switch strings.ToUpper(strings.TrimSpace(r.CardType)) {
	case "VISA_DEBIT", "MASTERCARD_DEBIT", "VISA_CREDIT", "MASTERCARD_CREDIT":
	default:
		errs = append(errs, "cardType must be one of VISA_DEBIT, MASTERCARD_DEBIT, VISA_CREDIT, MASTERCARD_CREDIT")
	}

	if strings.TrimSpace(r.CardName) == "" {
		errs = append(errs, "cardName is required")
	}

	pin := strings.TrimSpace(r.PIN)
	if len(pin) != 4 || !isDigits(pin) {
		errs = append(errs, "pin must be exactly 4 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CardActionRequest struct {
	UserID string `json:"userId"`
	CardID string `json:"cardId"`
	// One of activate, block, unblock.
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

func (r CardActionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.CardID) == "" {
		errs = append(errs, "cardId is required")
	}
	switch strings.ToLower(strings.TrimSpace(r.Action)) {
	case "activate", "unblock":
	case "block":
		if strings.TrimSpace(r.Reason) == "" {
			errs = append(errs, "reason is required when blocking a card")
		}
	default:
		errs = append(errs, "action must be one of activate, block, unblock")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateCardLimitsRequest struct {
	UserID                 string `json:"userId"`
	CardID                 string `json:"cardId"`
	DailyLimit             string `json:"dailyLimit,omitempty"`
	MonthlyLimit           string `json:"monthlyLimit,omitempty"`
	SingleTransactionLimit string `json:"singleTransactionLimit,omitempty"`
}

func (r UpdateCardLimitsRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.CardID) == "" {
		errs = append(errs, "cardId is required")
	}

	provided := false
	for field, value := range map[string]string{
		"dailyLimit":             r.DailyLimit,
		"monthlyLimit":           r.MonthlyLimit,
		"singleTransactionLimit": r.SingleTransactionLimit,
	} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		provided = true
		errs = validateAmount(errs, field, value)
	}
	if !provided {
		errs = append(errs, "at least one limit field is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CardResponse struct {
	ID                     string `json:"id"`
	AccountID              string `json:"accountId,omitempty"`
	MaskedCardNumber       string `json:"maskedCardNumber"`
	CardType               string `json:"cardType"`
	CardName               string `json:"cardName"`
	ExpiryMonth            string `json:"expiryMonth"`
	ExpiryYear             string `json:"expiryYear"`
	DailyLimit             string `json:"dailyLimit"`
	MonthlyLimit           string `json:"monthlyLimit"`
	SingleTransactionLimit string `json:"singleTransactionLimit"`
	Status                 string `json:"status"`
	IsVirtual              bool   `json:"isVirtual"`
	CreatedAt              string `json:"createdAt"`
}

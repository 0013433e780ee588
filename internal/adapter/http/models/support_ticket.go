package models

import (
	"errors"
	"strings"
)

type CreateTicketRequest struct {
	UserID        string `json:"userId"`
	Category      string `json:"category"`
	Priority      string `json:"priority,omitempty"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	TransactionID string `json:"transactionId,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

func (r CreateTicketRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}

	switch strings.ToUpper(strings.TrimSpace(r.Category)) {
	case "ACCOUNT", "TRANSACTION", "CARD", "LOAN", "TECHNICAL", "GENERAL", "COMPLAINT":
	default:
		errs = append(errs, "category must be one of ACCOUNT, TRANSACTION, CARD, LOAN, TECHNICAL, GENERAL, COMPLAINT")
	}

	switch strings.ToUpper(strings.TrimSpace(r.Priority)) {
	case "", "LOW", "MEDIUM", "HIGH", "URGENT":
	default:
		errs = append(errs, "priority must be one of LOW, MEDIUM, HIGH, URGENT")
	}

	if strings.TrimSpace(r.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, "description is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateTicketStatusRequest struct {
	UserID       string `json:"userId"`
	TicketNumber string `json:"ticketNumber"`
	Status       string `json:"status"`
}

func (r UpdateTicketStatusRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.TicketNumber) == "" {
		errs = append(errs, "ticketNumber is required")
	}
	switch strings.ToUpper(strings.TrimSpace(r.Status)) {
	case "OPEN", "IN_PROGRESS", "WAITING_CUSTOMER", "RESOLVED", "CLOSED":
	default:
		errs = append(errs, "status must be one of OPEN, IN_PROGRESS, WAITING_CUSTOMER, RESOLVED, CLOSED")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TicketResponse struct {
	TicketNumber  string `json:"ticketNumber"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
	ResolvedAt    string `json:"resolvedAt,omitempty"`
	ClosedAt      string `json:"closedAt,omitempty"`
}

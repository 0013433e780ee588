package domain

import "time"

type TicketCategory string

const (
	TicketCategoryAccount     TicketCategory = "ACCOUNT"
	TicketCategoryTransaction TicketCategory = "TRANSACTION"
	TicketCategoryCard        TicketCategory = "CARD"
	TicketCategoryLoan        TicketCategory = "LOAN"
	TicketCategoryTechnical   TicketCategory = "TECHNICAL"
	TicketCategoryGeneral     TicketCategory = "GENERAL"
	TicketCategoryComplaint   TicketCategory = "COMPLAINT"
)

type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "OPEN"
	TicketStatusInProgress      TicketStatus = "IN_PROGRESS"
	TicketStatusWaitingCustomer TicketStatus = "WAITING_CUSTOMER"
	TicketStatusResolved        TicketStatus = "RESOLVED"
	TicketStatusClosed          TicketStatus = "CLOSED"
)

type SupportTicket struct {
	ID           string
	TicketNumber string
	UserID       string

	Category TicketCategory
	Priority NotificationPriority

	Subject     string
	Description string
	Status      TicketStatus

	TransactionID *string
	AccountNumber *string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
	ClosedAt   *time.Time
}

package repo_interfaces

import (
	"context"

	"github.com/royal-shore/core-banking/internal/domain"
)

type SupportTicketRepository interface {
	Create(ctx context.Context, ticket domain.SupportTicket) (domain.SupportTicket, error)
	GetByNumber(ctx context.Context, userID, ticketNumber string) (domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, userID, ticketNumber string, status domain.TicketStatus) error
}

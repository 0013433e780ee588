package repo_interfaces

import (
	"context"

	"github.com/royal-shore/core-banking/internal/domain"
)

type CardRepository interface {
	Create(ctx context.Context, card domain.Card) (domain.Card, error)
	GetByID(ctx context.Context, userID, cardID string) (domain.Card, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Card, error)
	UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus, reason *string) error
	UpdateLimits(ctx context.Context, cardID string, update domain.CardLimitsUpdate) error
}

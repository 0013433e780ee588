package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GetForUpdate(ctx context.Context, accountNumber string) (domain.Account, error)
	UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, closedReason *string) error
	UpdateLimits(ctx context.Context, accountID string, update domain.AccountLimitsUpdate) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
}

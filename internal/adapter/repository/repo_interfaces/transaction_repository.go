package repo_interfaces

import (
	"context"

	"github.com/royal-shore/core-banking/internal/domain"
)

type TransactionRepository interface {
	Append(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
	MarkReversed(ctx context.Context, transactionID string, reversalTransactionID string) error
}

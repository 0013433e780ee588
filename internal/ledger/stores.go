package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
)

// AccountStore is the engine's view of persisted account state. The
// ForUpdate methods must be called inside a TxManager transaction; they
// take a row-level exclusive lock so the guarantee holds across process
// instances.
type AccountStore interface {
	GetForUpdate(ctx context.Context, accountNumber string) (domain.Account, error)
	UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
}

// TransactionLog is the append-mostly movement history. Append returns
// domain.ErrDuplicateIdentifier when the transaction ID collides so the
// engine can retry with a fresh one.
type TransactionLog interface {
	Append(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error)
	MarkReversed(ctx context.Context, transactionID string, reversalTransactionID string) error
}

// LimitUsageStore tracks the per-(user, day) movement counters. Apply
// increments inside the caller's transaction so counters never under- or
// over-count under concurrency.
type LimitUsageStore interface {
	GetForUpdate(ctx context.Context, userID string, day time.Time) (domain.DailyLimitUsage, error)
	Apply(ctx context.Context, userID string, day time.Time, delta domain.LimitDelta) error
}

type UserStore interface {
	GetByID(ctx context.Context, userID string) (domain.User, error)
}

// TxManager runs fn within one atomic storage transaction: everything fn
// writes commits together or not at all.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier is told about completed movements after commit. Calls are fire
// and forget; failures never affect the financial mutation.
type Notifier interface {
	MovementCompleted(ctx context.Context, txn domain.Transaction)
}

type IDGenerator interface {
	Generate(ctx context.Context, kind identifier.Kind) (string, error)
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/logger"
)

type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx; repositories run
// against the transaction carried in the context when one is present.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs functions inside a database transaction. The open
// transaction is stored in the context so repositories participate
// transparently. A per-transaction lock_timeout bounds how long a
// FOR UPDATE waits for a row held by another movement.
type TxManager struct {
	db            *sql.DB
	lockTimeoutMS int
}

func NewTxManager(db *sql.DB, lockTimeoutMS int) *TxManager {
	if lockTimeoutMS <= 0 {
		lockTimeoutMS = 3000
	}
	return &TxManager{db: db, lockTimeoutMS: lockTimeoutMS}
}

func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logger.Error("tx manager rollback failed", rbErr, nil)
		}
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeoutMS)); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

func txFromContext(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

func chooseQuerier(ctx context.Context, db *sql.DB) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

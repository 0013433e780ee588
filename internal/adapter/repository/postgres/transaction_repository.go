package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/logger"
)

const transactionColumns = `
	id,
	transaction_id,
	user_id,
	account_id,
	account_number,
	transaction_type,
	amount,
	currency,
	fee,
	beneficiary_account_number,
	beneficiary_name,
	beneficiary_bank,
	status,
	channel,
	balance_before,
	balance_after,
	description,
	reference_number,
	related_transaction_id,
	initiated_at,
	completed_at,
	failed_at,
	failure_reason`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append inserts one movement row. A transaction_id collision surfaces
// as domain.ErrDuplicateIdentifier so the engine retries with a fresh
// identifier instead of failing the caller.
func (r *TransactionRepository) Append(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	transaction_id,
	user_id,
	account_id,
	account_number,
	transaction_type,
	amount,
	currency,
	fee,
	beneficiary_account_number,
	beneficiary_name,
	beneficiary_bank,
	status,
	channel,
	balance_before,
	balance_after,
	description,
	reference_number,
	related_transaction_id,
	initiated_at,
	completed_at,
	failed_at,
	failure_reason
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
RETURNING id`

	var id string
	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		txn.TransactionID,
		txn.UserID,
		txn.AccountID,
		txn.AccountNumber,
		txn.Type,
		txn.Amount,
		txn.Currency,
		txn.Fee,
		txn.BeneficiaryAccountNumber,
		txn.BeneficiaryName,
		txn.BeneficiaryBank,
		txn.Status,
		txn.Channel,
		txn.BalanceBefore,
		txn.BalanceAfter,
		nullableString(txn.Description),
		nullableString(txn.ReferenceNumber),
		txn.RelatedTransactionID,
		txn.InitiatedAt,
		txn.CompletedAt,
		txn.FailedAt,
		txn.FailureReason,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return domain.Transaction{}, domain.ErrDuplicateIdentifier
		}
		logger.Error("transaction repository append failed", err, logger.Fields{
			"transactionId": txn.TransactionID,
			"accountNumber": txn.AccountNumber,
		})
		return domain.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	txn.ID = id
	return txn, nil
}

func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	return scanTransaction(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, transactionID))
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY initiated_at DESC LIMIT $2`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return txns, nil
}

// MarkReversed transitions a COMPLETED row to REVERSED, recording the
// compensating transaction. The guard in the WHERE clause keeps the
// transition single-shot.
func (r *TransactionRepository) MarkReversed(ctx context.Context, transactionID string, reversalTransactionID string) error {
	const query = `
UPDATE transactions
SET status = 'REVERSED',
    related_transaction_id = $2
WHERE transaction_id = $1
  AND status = 'COMPLETED'`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, transactionID, reversalTransactionID)
	if err != nil {
		return fmt.Errorf("mark transaction reversed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark transaction reversed rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotReversible
	}
	return nil
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		txn                      domain.Transaction
		beneficiaryAccountNumber sql.NullString
		beneficiaryName          sql.NullString
		beneficiaryBank          sql.NullString
		description              sql.NullString
		referenceNumber          sql.NullString
		relatedTransactionID     sql.NullString
		completedAt              sql.NullTime
		failedAt                 sql.NullTime
		failureReason            sql.NullString
	)

	if err := row.Scan(
		&txn.ID,
		&txn.TransactionID,
		&txn.UserID,
		&txn.AccountID,
		&txn.AccountNumber,
		&txn.Type,
		&txn.Amount,
		&txn.Currency,
		&txn.Fee,
		&beneficiaryAccountNumber,
		&beneficiaryName,
		&beneficiaryBank,
		&txn.Status,
		&txn.Channel,
		&txn.BalanceBefore,
		&txn.BalanceAfter,
		&description,
		&referenceNumber,
		&relatedTransactionID,
		&txn.InitiatedAt,
		&completedAt,
		&failedAt,
		&failureReason,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	txn.Description = description.String
	txn.ReferenceNumber = referenceNumber.String
	txn.BeneficiaryAccountNumber = nullStringPtr(beneficiaryAccountNumber)
	txn.BeneficiaryName = nullStringPtr(beneficiaryName)
	txn.BeneficiaryBank = nullStringPtr(beneficiaryBank)
	txn.RelatedTransactionID = nullStringPtr(relatedTransactionID)
	txn.CompletedAt = nullTimePtr(completedAt)
	txn.FailedAt = nullTimePtr(failedAt)
	txn.FailureReason = nullStringPtr(failureReason)
	return txn, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	value := ns.String
	return &value
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	value := nt.Time
	return &value
}

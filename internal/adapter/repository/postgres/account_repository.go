package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/logger"
)

const accountColumns = `
	id,
	customer_id,
	account_number,
	account_name,
	account_type,
	currency,
	balance,
	ach_routing,
	swift_code,
	bank_name,
	status,
	is_active,
	is_frozen,
	is_closed,
	daily_withdrawal_limit,
	daily_transfer_limit,
	minimum_balance,
	overdraft_limit,
	created_at,
	updated_at,
	activated_at,
	closed_at,
	closed_reason`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	customer_id,
	account_number,
	account_name,
	account_type,
	currency,
	balance,
	ach_routing,
	swift_code,
	bank_name,
	status,
	is_active,
	is_frozen,
	is_closed,
	daily_withdrawal_limit,
	daily_transfer_limit,
	minimum_balance,
	overdraft_limit
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.AccountNumber,
		account.AccountName,
		account.AccountType,
		account.Currency,
		account.Balance,
		account.ACHRouting,
		account.SwiftCode,
		account.BankName,
		account.Status,
		account.IsActive,
		account.IsFrozen,
		account.IsClosed,
		account.DailyWithdrawalLimit,
		account.DailyTransferLimit,
		account.MinimumBalance,
		account.OverdraftLimit,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateIdentifier
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanAccount(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, accountNumber))
}

// GetForUpdate re-reads the account under a row-level exclusive lock.
// Must run inside a TxManager transaction; a lock wait beyond the
// configured lock_timeout maps to domain.ErrLockTimeout.
func (r *AccountRepository) GetForUpdate(ctx context.Context, accountNumber string) (domain.Account, error) {
	if txFromContext(ctx) == nil {
		return domain.Account{}, fmt.Errorf("get account for update: no transaction in context")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 FOR UPDATE`
	account, err := r.scanAccount(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if isLockTimeout(err) {
			logger.Error("account repository lock wait timed out", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, domain.ErrLockTimeout
		}
		return domain.Account{}, err
	}
	return account, nil
}

// UpdateBalance writes the new balance; only the ledger engine calls
// this, inside the same transaction that appended the movement row.
func (r *AccountRepository) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $2,
    updated_at = NOW()
WHERE id = $1`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, accountID, balance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account balance rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, reason *string) error {
	const query = `
UPDATE accounts
SET status = $2,
    is_active = ($2 = 'ACTIVE'),
    is_frozen = ($2 = 'FROZEN'),
    is_closed = ($2 = 'CLOSED'),
    activated_at = CASE WHEN $2 = 'ACTIVE' AND activated_at IS NULL THEN NOW() ELSE activated_at END,
    closed_at = CASE WHEN $2 = 'CLOSED' THEN NOW() ELSE closed_at END,
    closed_reason = CASE WHEN $2 = 'CLOSED' THEN $3 ELSE closed_reason END,
    updated_at = NOW()
WHERE id = $1`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, accountID, status, reason)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateLimits(ctx context.Context, accountID string, update domain.AccountLimitsUpdate) error {
	const query = `
UPDATE accounts
SET account_name = COALESCE($2, account_name),
    daily_withdrawal_limit = COALESCE($3, daily_withdrawal_limit),
    daily_transfer_limit = COALESCE($4, daily_transfer_limit),
    updated_at = NOW()
WHERE id = $1`

	result, err := chooseQuerier(ctx, r.db).ExecContext(
		ctx,
		query,
		accountID,
		update.AccountName,
		decimalPtrValue(update.DailyWithdrawalLimit),
		decimalPtrValue(update.DailyTransferLimit),
	)
	if err != nil {
		return fmt.Errorf("update account limits: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account limits rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts rows: %w", err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account      domain.Account
		accountName  sql.NullString
		achRouting   sql.NullString
		swiftCode    sql.NullString
		activatedAt  sql.NullTime
		closedAt     sql.NullTime
		closedReason sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&accountName,
		&account.AccountType,
		&account.Currency,
		&account.Balance,
		&achRouting,
		&swiftCode,
		&account.BankName,
		&account.Status,
		&account.IsActive,
		&account.IsFrozen,
		&account.IsClosed,
		&account.DailyWithdrawalLimit,
		&account.DailyTransferLimit,
		&account.MinimumBalance,
		&account.OverdraftLimit,
		&account.CreatedAt,
		&account.UpdatedAt,
		&activatedAt,
		&closedAt,
		&closedReason,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}

	account.AccountName = accountName.String
	account.ACHRouting = achRouting.String
	account.SwiftCode = swiftCode.String
	if activatedAt.Valid {
		value := activatedAt.Time
		account.ActivatedAt = &value
	}
	if closedAt.Valid {
		value := closedAt.Time
		account.ClosedAt = &value
	}
	if closedReason.Valid {
		value := closedReason.String
		account.ClosedReason = &value
	}
	return account, nil
}

func decimalPtrValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

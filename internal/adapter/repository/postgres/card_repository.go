package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/domain"
)

const cardColumns = `
	id,
	user_id,
	account_id,
	card_number,
	card_type,
	card_name,
	cvv,
	expiry_month,
	expiry_year,
	pin_hash,
	daily_limit,
	monthly_limit,
	single_transaction_limit,
	status,
	is_virtual,
	created_at,
	activated_at,
	blocked_at,
	blocked_reason`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, c domain.Card) (domain.Card, error) {
	const query = `
INSERT INTO cards (
	user_id,
	account_id,
	card_number,
	card_type,
	card_name,
	cvv,
	expiry_month,
	expiry_year,
	pin_hash,
	daily_limit,
	monthly_limit,
	single_transaction_limit,
	status,
	is_virtual
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, created_at`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		c.UserID,
		c.AccountID,
		c.CardNumber,
		c.CardType,
		c.CardName,
		c.CVV,
		c.ExpiryMonth,
		c.ExpiryYear,
		c.PINHash,
		c.DailyLimit,
		c.MonthlyLimit,
		c.SingleTransactionLimit,
		c.Status,
		c.IsVirtual,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Card{}, domain.ErrDuplicateIdentifier
		}
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}
	return c, nil
}

func (r *CardRepository) GetByID(ctx context.Context, userID, cardID string) (domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND user_id = $2`
	return scanCard(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, cardID, userID))
}

func (r *CardRepository) ListByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards rows: %w", err)
	}
	return out, nil
}

func (r *CardRepository) UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus, reason *string) error {
	const query = `
UPDATE cards
SET status = $2,
    activated_at = CASE WHEN $2 = 'ACTIVE' AND activated_at IS NULL THEN NOW() ELSE activated_at END,
    blocked_at = CASE WHEN $2 = 'BLOCKED' THEN NOW() ELSE NULL END,
    blocked_reason = CASE WHEN $2 = 'BLOCKED' THEN $3 ELSE NULL END
WHERE id = $1`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, cardID, status, reason)
	if err != nil {
		return fmt.Errorf("update card status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update card status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *CardRepository) UpdateLimits(ctx context.Context, cardID string, upd domain.CardLimitsUpdate) error {
	const query = `
UPDATE cards
SET daily_limit = COALESCE($2, daily_limit),
    monthly_limit = COALESCE($3, monthly_limit),
    single_transaction_limit = COALESCE($4, single_transaction_limit)
WHERE id = $1`

	result, err := chooseQuerier(ctx, r.db).ExecContext(
		ctx,
		query,
		cardID,
		decimalPtrValue(upd.DailyLimit),
		decimalPtrValue(upd.MonthlyLimit),
		decimalPtrValue(upd.SingleTransactionLimit),
	)
	if err != nil {
		return fmt.Errorf("update card limits: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update card limits rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func scanCard(row rowScanner) (domain.Card, error) {
	var (
		c             domain.Card
		accountID     sql.NullString
		activatedAt   sql.NullTime
		blockedAt     sql.NullTime
		blockedReason sql.NullString
	)

	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&accountID,
		&c.CardNumber,
		&c.CardType,
		&c.CardName,
		&c.CVV,
		&c.ExpiryMonth,
		&c.ExpiryYear,
		&c.PINHash,
		&c.DailyLimit,
		&c.MonthlyLimit,
		&c.SingleTransactionLimit,
		&c.Status,
		&c.IsVirtual,
		&c.CreatedAt,
		&activatedAt,
		&blockedAt,
		&blockedReason,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Card{}, domain.ErrRecordNotFound
		}
		return domain.Card{}, fmt.Errorf("scan card: %w", err)
	}

	c.AccountID = nullStringPtr(accountID)
	c.ActivatedAt = nullTimePtr(activatedAt)
	c.BlockedAt = nullTimePtr(blockedAt)
	c.BlockedReason = nullStringPtr(blockedReason)
	return c, nil
}

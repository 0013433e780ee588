package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

type LimitUsageRepository struct {
	db *sql.DB
}

func NewLimitUsageRepository(db *sql.DB) *LimitUsageRepository {
	return &LimitUsageRepository{db: db}
}

// GetForUpdate reads the day's counters under a row lock so concurrent
// movements by the same user serialize on the counter row. The row is
// seeded first: FOR UPDATE on a row that does not exist yet locks
// nothing, and two first-of-the-day movements could both consult zero
// usage before either increment lands.
func (r *LimitUsageRepository) GetForUpdate(ctx context.Context, userID string, day time.Time) (domain.DailyLimitUsage, error) {
	const seed = `
INSERT INTO daily_limit_usage (user_id, usage_date)
VALUES ($1, $2)
ON CONFLICT (user_id, usage_date) DO NOTHING`

	const query = `
SELECT user_id,
       usage_date,
       transfer_count,
       transfer_total,
       withdrawal_count,
       withdrawal_total
FROM daily_limit_usage
WHERE user_id = $1 AND usage_date = $2
FOR UPDATE`

	q := chooseQuerier(ctx, r.db)
	if _, err := q.ExecContext(ctx, seed, userID, day); err != nil {
		return domain.DailyLimitUsage{}, fmt.Errorf("seed limit usage: %w", err)
	}

	var usage domain.DailyLimitUsage
	err := q.QueryRowContext(ctx, query, userID, day).Scan(
		&usage.UserID,
		&usage.UsageDate,
		&usage.TransferCount,
		&usage.TransferTotal,
		&usage.WithdrawalCount,
		&usage.WithdrawalTotal,
	)
	if err == sql.ErrNoRows {
		return domain.DailyLimitUsage{
			UserID:          userID,
			UsageDate:       day,
			TransferTotal:   decimal.Zero,
			WithdrawalTotal: decimal.Zero,
		}, nil
	}
	if err != nil {
		if isLockTimeout(err) {
			return domain.DailyLimitUsage{}, domain.ErrLockTimeout
		}
		return domain.DailyLimitUsage{}, fmt.Errorf("get limit usage: %w", err)
	}
	return usage, nil
}

// Apply upserts the day's counters, adding the delta. Runs inside the
// engine's transaction so the counters commit with the balance change.
func (r *LimitUsageRepository) Apply(ctx context.Context, userID string, day time.Time, delta domain.LimitDelta) error {
	const query = `
INSERT INTO daily_limit_usage (
	user_id,
	usage_date,
	transfer_count,
	transfer_total,
	withdrawal_count,
	withdrawal_total
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, usage_date) DO UPDATE
SET transfer_count = daily_limit_usage.transfer_count + EXCLUDED.transfer_count,
    transfer_total = daily_limit_usage.transfer_total + EXCLUDED.transfer_total,
    withdrawal_count = daily_limit_usage.withdrawal_count + EXCLUDED.withdrawal_count,
    withdrawal_total = daily_limit_usage.withdrawal_total + EXCLUDED.withdrawal_total`

	if _, err := chooseQuerier(ctx, r.db).ExecContext(
		ctx,
		query,
		userID,
		day,
		delta.TransferCount,
		delta.TransferAmount,
		delta.WithdrawalCount,
		delta.WithdrawalAmount,
	); err != nil {
		return fmt.Errorf("apply limit usage: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (domain.User, error) {
	const query = `
SELECT id,
       email,
       full_name,
       daily_transfer_limit,
       can_make_transfers,
       created_at,
       updated_at
FROM users
WHERE id = $1`

	var user domain.User
	if err := chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.DailyTransferLimit,
		&user.CanMakeTransfers,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (email, full_name, daily_transfer_limit, can_make_transfers)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		user.Email,
		user.FullName,
		user.DailyTransferLimit,
		user.CanMakeTransfers,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateIdentifier
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/domain"
)

const beneficiaryColumns = `
	id,
	user_id,
	nickname,
	account_number,
	account_name,
	bank_name,
	bank_code,
	routing_number,
	swift_code,
	is_verified,
	is_favorite,
	created_at,
	last_used`

type BeneficiaryRepository struct {
	db *sql.DB
}

func NewBeneficiaryRepository(db *sql.DB) *BeneficiaryRepository {
	return &BeneficiaryRepository{db: db}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	const query = `
INSERT INTO beneficiaries (
	user_id,
	nickname,
	account_number,
	account_name,
	bank_name,
	bank_code,
	routing_number,
	swift_code,
	is_favorite
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		b.UserID,
		b.Nickname,
		b.AccountNumber,
		b.AccountName,
		b.BankName,
		b.BankCode,
		b.RoutingNumber,
		b.SwiftCode,
		b.IsFavorite,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Beneficiary{}, domain.ErrBeneficiaryExists
		}
		return domain.Beneficiary{}, fmt.Errorf("create beneficiary: %w", err)
	}
	return b, nil
}

// GetOrCreate returns the existing beneficiary for
// (user, account number, bank name) or creates it.
func (r *BeneficiaryRepository) GetOrCreate(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	existing, err := r.find(ctx, b.UserID, b.AccountNumber, b.BankName)
	if err == nil {
		return existing, nil
	}
	if err != domain.ErrRecordNotFound {
		return domain.Beneficiary{}, err
	}

	created, err := r.Create(ctx, b)
	if err == domain.ErrBeneficiaryExists {
		// Lost the race to a concurrent insert; the row exists now.
		return r.find(ctx, b.UserID, b.AccountNumber, b.BankName)
	}
	return created, err
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, userID, beneficiaryID string) (domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id = $1 AND user_id = $2`
	return scanBeneficiary(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, beneficiaryID, userID))
}

func (r *BeneficiaryRepository) ListByUser(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE user_id = $1 ORDER BY is_favorite DESC, nickname`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var out []domain.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list beneficiaries rows: %w", err)
	}
	return out, nil
}

func (r *BeneficiaryRepository) Delete(ctx context.Context, userID, beneficiaryID string) error {
	const query = `DELETE FROM beneficiaries WHERE id = $1 AND user_id = $2`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, beneficiaryID, userID)
	if err != nil {
		return fmt.Errorf("delete beneficiary: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete beneficiary rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *BeneficiaryRepository) TouchLastUsed(ctx context.Context, userID, accountNumber, bankName string) error {
	const query = `
UPDATE beneficiaries
SET last_used = NOW()
WHERE user_id = $1 AND account_number = $2 AND bank_name = $3`

	if _, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, userID, accountNumber, bankName); err != nil {
		return fmt.Errorf("touch beneficiary: %w", err)
	}
	return nil
}

func (r *BeneficiaryRepository) find(ctx context.Context, userID, accountNumber, bankName string) (domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE user_id = $1 AND account_number = $2 AND bank_name = $3`
	return scanBeneficiary(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, userID, accountNumber, bankName))
}

func scanBeneficiary(row rowScanner) (domain.Beneficiary, error) {
	var (
		b             domain.Beneficiary
		bankCode      sql.NullString
		routingNumber sql.NullString
		swiftCode     sql.NullString
		lastUsed      sql.NullTime
	)

	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Nickname,
		&b.AccountNumber,
		&b.AccountName,
		&b.BankName,
		&bankCode,
		&routingNumber,
		&swiftCode,
		&b.IsVerified,
		&b.IsFavorite,
		&b.CreatedAt,
		&lastUsed,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Beneficiary{}, domain.ErrRecordNotFound
		}
		return domain.Beneficiary{}, fmt.Errorf("scan beneficiary: %w", err)
	}

	b.BankCode = nullStringPtr(bankCode)
	b.RoutingNumber = nullStringPtr(routingNumber)
	b.SwiftCode = nullStringPtr(swiftCode)
	b.LastUsed = nullTimePtr(lastUsed)
	return b, nil
}

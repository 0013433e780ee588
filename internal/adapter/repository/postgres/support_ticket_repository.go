package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/domain"
)

const ticketColumns = `
	id,
	ticket_number,
	user_id,
	category,
	priority,
	subject,
	description,
	status,
	transaction_id,
	account_number,
	created_at,
	updated_at,
	resolved_at,
	closed_at`

type SupportTicketRepository struct {
	db *sql.DB
}

func NewSupportTicketRepository(db *sql.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

func (r *SupportTicketRepository) Create(ctx context.Context, t domain.SupportTicket) (domain.SupportTicket, error) {
	const query = `
INSERT INTO support_tickets (
	ticket_number,
	user_id,
	category,
	priority,
	subject,
	description,
	status,
	transaction_id,
	account_number
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		t.TicketNumber,
		t.UserID,
		t.Category,
		t.Priority,
		t.Subject,
		t.Description,
		t.Status,
		t.TransactionID,
		t.AccountNumber,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.SupportTicket{}, domain.ErrDuplicateIdentifier
		}
		return domain.SupportTicket{}, fmt.Errorf("create support ticket: %w", err)
	}
	return t, nil
}

func (r *SupportTicketRepository) GetByNumber(ctx context.Context, userID, ticketNumber string) (domain.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE ticket_number = $1 AND user_id = $2`
	return scanTicket(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, ticketNumber, userID))
}

func (r *SupportTicketRepository) ListByUser(ctx context.Context, userID string) ([]domain.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list support tickets: %w", err)
	}
	defer rows.Close()

	var out []domain.SupportTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list support tickets rows: %w", err)
	}
	return out, nil
}

func (r *SupportTicketRepository) UpdateStatus(ctx context.Context, userID, ticketNumber string, status domain.TicketStatus) error {
	const query = `
UPDATE support_tickets
SET status = $3,
    updated_at = NOW(),
    resolved_at = CASE WHEN $3 = 'RESOLVED' THEN NOW() ELSE resolved_at END,
    closed_at = CASE WHEN $3 = 'CLOSED' THEN NOW() ELSE closed_at END
WHERE ticket_number = $1 AND user_id = $2`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, ticketNumber, userID, status)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update ticket status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func scanTicket(row rowScanner) (domain.SupportTicket, error) {
	var (
		t             domain.SupportTicket
		transactionID sql.NullString
		accountNumber sql.NullString
		resolvedAt    sql.NullTime
		closedAt      sql.NullTime
	)

	if err := row.Scan(
		&t.ID,
		&t.TicketNumber,
		&t.UserID,
		&t.Category,
		&t.Priority,
		&t.Subject,
		&t.Description,
		&t.Status,
		&transactionID,
		&accountNumber,
		&t.CreatedAt,
		&t.UpdatedAt,
		&resolvedAt,
		&closedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.SupportTicket{}, domain.ErrRecordNotFound
		}
		return domain.SupportTicket{}, fmt.Errorf("scan support ticket: %w", err)
	}

	t.TransactionID = nullStringPtr(transactionID)
	t.AccountNumber = nullStringPtr(accountNumber)
	t.ResolvedAt = nullTimePtr(resolvedAt)
	t.ClosedAt = nullTimePtr(closedAt)
	return t, nil
}

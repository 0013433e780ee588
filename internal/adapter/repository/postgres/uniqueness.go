package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/identifier"
)

// UniquenessCheck answers whether a candidate identifier is already
// taken, one EXISTS query per identifier kind.
type UniquenessCheck struct {
	db *sql.DB
}

func NewUniquenessCheck(db *sql.DB) *UniquenessCheck {
	return &UniquenessCheck{db: db}
}

func (u *UniquenessCheck) Exists(ctx context.Context, kind identifier.Kind, candidate string) (bool, error) {
	var query string
	switch kind {
	case identifier.KindAccountNumber:
		query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`
	case identifier.KindTransactionID:
		query = `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`
	case identifier.KindLoanNumber:
		query = `SELECT EXISTS (SELECT 1 FROM loans WHERE loan_number = $1)`
	case identifier.KindCardNumber:
		query = `SELECT EXISTS (SELECT 1 FROM cards WHERE card_number = $1)`
	case identifier.KindTicketNumber:
		query = `SELECT EXISTS (SELECT 1 FROM support_tickets WHERE ticket_number = $1)`
	case identifier.KindRoutingNumber, identifier.KindSwiftCode:
		// Not stored in a unique column; collisions are harmless.
		return false, nil
	default:
		return false, fmt.Errorf("uniqueness check: unknown identifier kind %q", kind)
	}

	var exists bool
	if err := chooseQuerier(ctx, u.db).QueryRowContext(ctx, query, candidate).Scan(&exists); err != nil {
		return false, fmt.Errorf("uniqueness check %s: %w", kind, err)
	}
	return exists, nil
}

package identifier

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/logger"
)

type Kind string

const (
	KindAccountNumber Kind = "ACCOUNT_NUMBER"
	KindTransactionID Kind = "TRANSACTION_ID"
	KindLoanNumber    Kind = "LOAN_NUMBER"
	KindCardNumber    Kind = "CARD_NUMBER"
	KindTicketNumber  Kind = "TICKET_NUMBER"
	KindRoutingNumber Kind = "ROUTING_NUMBER"
	KindSwiftCode     Kind = "SWIFT_CODE"
)

const swiftPrefix = "RYLSINTBNK"

// UniquenessCheck answers whether a candidate identifier is already taken.
// The check is an optimization: the storage unique constraint is the real
// guarantee, and create paths retry on constraint violations with a fresh
// candidate.
type UniquenessCheck interface {
	Exists(ctx context.Context, kind Kind, candidate string) (bool, error)
}

type Generator struct {
	store       UniquenessCheck
	now         func() time.Time
	maxAttempts int
}

func NewGenerator(store UniquenessCheck) *Generator {
	return &Generator{
		store:       store,
		now:         time.Now,
		maxAttempts: 8,
	}
}

// Generate draws random candidates of the kind's format until one is not
// known to the store, giving up after a bounded number of attempts with
// domain.ErrDuplicateIdentifier.
func (g *Generator) Generate(ctx context.Context, kind Kind) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate, err := g.sample(kind)
		if err != nil {
			return "", fmt.Errorf("sample %s candidate: %w", kind, err)
		}

		taken, err := g.store.Exists(ctx, kind, candidate)
		if err != nil {
			return "", fmt.Errorf("check %s uniqueness: %w", kind, err)
		}
		if !taken {
			return candidate, nil
		}

		logger.Info("identifier generator candidate collision", logger.Fields{
			"kind":    string(kind),
			"attempt": attempt + 1,
		})
	}

	logger.Error("identifier generator exhausted attempts", domain.ErrDuplicateIdentifier, logger.Fields{
		"kind":        string(kind),
		"maxAttempts": g.maxAttempts,
	})
	return "", domain.ErrDuplicateIdentifier
}

func (g *Generator) sample(kind Kind) (string, error) {
	switch kind {
	case KindAccountNumber:
		return randomDigits(10)
	case KindTransactionID:
		suffix, err := randomDigits(6)
		if err != nil {
			return "", err
		}
		return "TXN" + g.now().UTC().Format("20060102150405") + suffix, nil
	case KindLoanNumber:
		digits, err := randomDigits(10)
		if err != nil {
			return "", err
		}
		return "LN" + digits, nil
	case KindCardNumber:
		return randomDigits(16)
	case KindTicketNumber:
		digits, err := randomDigits(8)
		if err != nil {
			return "", err
		}
		return "TKT" + digits, nil
	case KindRoutingNumber:
		return randomDigits(9)
	case KindSwiftCode:
		suffix, err := randomAlphanumeric(3)
		if err != nil {
			return "", err
		}
		return swiftPrefix + suffix, nil
	default:
		return "", fmt.Errorf("unknown identifier kind %q", kind)
	}
}

func randomDigits(n int) (string, error) {
	const digits = "0123456789"
	return randomFrom(digits, n)
}

func randomAlphanumeric(n int) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return randomFrom(alphabet, n)
}

func randomFrom(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

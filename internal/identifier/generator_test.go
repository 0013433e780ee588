package identifier_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
)

// fakeUniquenessCheck remembers every identifier it has been asked about
// and can be preloaded with taken values.
type fakeUniquenessCheck struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newFakeUniquenessCheck() *fakeUniquenessCheck {
	return &fakeUniquenessCheck{taken: make(map[string]bool)}
}

func (f *fakeUniquenessCheck) Exists(_ context.Context, _ identifier.Kind, candidate string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken[candidate] {
		return true, nil
	}
	f.taken[candidate] = true
	return false, nil
}

type alwaysTaken struct{}

func (alwaysTaken) Exists(context.Context, identifier.Kind, string) (bool, error) {
	return true, nil
}

func TestGenerateAccountNumberFormat(t *testing.T) {
	gen := identifier.NewGenerator(newFakeUniquenessCheck())

	got, err := gen.Generate(context.Background(), identifier.KindAccountNumber)
	require.NoError(t, err)
	require.Len(t, got, 10)
	requireDigits(t, got)
}

func TestGenerateTransactionIDFormat(t *testing.T) {
	gen := identifier.NewGenerator(newFakeUniquenessCheck())

	got, err := gen.Generate(context.Background(), identifier.KindTransactionID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "TXN"))
	require.Len(t, got, len("TXN")+14+6)
	requireDigits(t, strings.TrimPrefix(got, "TXN"))
}

func TestGenerateLoanAndTicketPrefixes(t *testing.T) {
	gen := identifier.NewGenerator(newFakeUniquenessCheck())

	loan, err := gen.Generate(context.Background(), identifier.KindLoanNumber)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(loan, "LN"))

	ticket, err := gen.Generate(context.Background(), identifier.KindTicketNumber)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ticket, "TKT"))
}

func TestGenerateUnknownKind(t *testing.T) {
	gen := identifier.NewGenerator(newFakeUniquenessCheck())

	_, err := gen.Generate(context.Background(), identifier.Kind("SORT_CODE"))
	require.Error(t, err)
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	gen := identifier.NewGenerator(alwaysTaken{})

	_, err := gen.Generate(context.Background(), identifier.KindAccountNumber)
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
}

func TestGenerateConcurrentUniqueness(t *testing.T) {
	store := newFakeUniquenessCheck()
	gen := identifier.NewGenerator(store)

	const workers = 64
	var mu sync.Mutex
	seen := make(map[string]bool, workers)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			id, err := gen.Generate(ctx, identifier.KindAccountNumber)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate identifier issued: %s", id)
			}
			seen[id] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, seen, workers)
}

func requireDigits(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits only, got %q", s)
		}
	}
}

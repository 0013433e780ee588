package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
)

// fakeStore backs every engine dependency in memory. Store methods do
// not lock; all access goes through fakeTxManager, which holds the
// store's mutex for the whole transaction the way a row lock serializes
// concurrent movements.
type fakeStore struct {
	mu sync.Mutex

	accounts map[string]domain.Account // by account number
	txns     map[string]domain.Transaction
	usage    map[string]domain.DailyLimitUsage
	users    map[string]domain.User

	// Remaining Append calls that report a transaction-ID collision.
	duplicateAppends int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[string]domain.Account),
		txns:     make(map[string]domain.Transaction),
		usage:    make(map[string]domain.DailyLimitUsage),
		users:    make(map[string]domain.User),
	}
}

func (s *fakeStore) putAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = account
}

func (s *fakeStore) putUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *fakeStore) account(accountNumber string) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountNumber]
}

func (s *fakeStore) transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, 0, len(s.txns))
	for _, txn := range s.txns {
		out = append(out, txn)
	}
	return out
}

func (s *fakeStore) usageFor(userID string, day time.Time) domain.DailyLimitUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.usage[usageKey(userID, day)]; ok {
		return u
	}
	return emptyUsage(userID, day)
}

func (s *fakeStore) GetForUpdate(_ context.Context, accountNumber string) (domain.Account, error) {
	account, ok := s.accounts[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *fakeStore) UpdateBalance(_ context.Context, accountID string, balance decimal.Decimal) error {
	for number, account := range s.accounts {
		if account.ID == accountID {
			account.Balance = balance
			s.accounts[number] = account
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (s *fakeStore) Append(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if s.duplicateAppends > 0 {
		s.duplicateAppends--
		return domain.Transaction{}, domain.ErrDuplicateIdentifier
	}
	if _, exists := s.txns[txn.TransactionID]; exists {
		return domain.Transaction{}, domain.ErrDuplicateIdentifier
	}
	txn.ID = fmt.Sprintf("row-%d", len(s.txns)+1)
	s.txns[txn.TransactionID] = txn
	return txn, nil
}

func (s *fakeStore) FindByTransactionID(_ context.Context, transactionID string) (domain.Transaction, error) {
	txn, ok := s.txns[transactionID]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return txn, nil
}

func (s *fakeStore) MarkReversed(_ context.Context, transactionID, reversalTransactionID string) error {
	txn, ok := s.txns[transactionID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	txn.Status = domain.TransactionStatusReversed
	txn.RelatedTransactionID = &reversalTransactionID
	s.txns[transactionID] = txn
	return nil
}

func (s *fakeStore) GetForUpdateUsage(_ context.Context, userID string, day time.Time) (domain.DailyLimitUsage, error) {
	if u, ok := s.usage[usageKey(userID, day)]; ok {
		return u, nil
	}
	return emptyUsage(userID, day), nil
}

func (s *fakeStore) Apply(_ context.Context, userID string, day time.Time, delta domain.LimitDelta) error {
	key := usageKey(userID, day)
	u, ok := s.usage[key]
	if !ok {
		u = emptyUsage(userID, day)
	}
	u.TransferCount += delta.TransferCount
	u.TransferTotal = u.TransferTotal.Add(delta.TransferAmount)
	u.WithdrawalCount += delta.WithdrawalCount
	u.WithdrawalTotal = u.WithdrawalTotal.Add(delta.WithdrawalAmount)
	s.usage[key] = u
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, userID string) (domain.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func usageKey(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func emptyUsage(userID string, day time.Time) domain.DailyLimitUsage {
	return domain.DailyLimitUsage{
		UserID:          userID,
		UsageDate:       day,
		TransferTotal:   decimal.Zero,
		WithdrawalTotal: decimal.Zero,
	}
}

// usageStore adapts fakeStore's usage methods to the LimitUsageStore
// interface, whose GetForUpdate name collides with the account one.
type usageStore struct{ *fakeStore }

func (u usageStore) GetForUpdate(ctx context.Context, userID string, day time.Time) (domain.DailyLimitUsage, error) {
	return u.fakeStore.GetForUpdateUsage(ctx, userID, day)
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

type seqIDGenerator struct {
	counter atomic.Int64
}

func (g *seqIDGenerator) Generate(_ context.Context, kind identifier.Kind) (string, error) {
	n := g.counter.Add(1)
	return fmt.Sprintf("%s-%06d", kind, n), nil
}

type recordingNotifier struct {
	events chan domain.Transaction
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan domain.Transaction, 16)}
}

func (n *recordingNotifier) MovementCompleted(_ context.Context, txn domain.Transaction) {
	n.events <- txn
}

package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/ledger"
)

type engineFixture struct {
	engine   *ledger.Engine
	store    *fakeStore
	notifier *recordingNotifier
}

func newEngineFixture(t *testing.T) engineFixture {
	t.Helper()

	store := newFakeStore()
	notifier := newRecordingNotifier()
	engine := ledger.NewEngine(
		&fakeTxManager{store: store},
		store,
		store,
		usageStore{store},
		store,
		&seqIDGenerator{},
		notifier,
		ledger.DefaultPolicy(),
	)

	store.putUser(domain.User{
		ID:                 "user-1",
		Email:              "jane@example.com",
		FullName:           "Jane Doe",
		DailyTransferLimit: decimal.NewFromInt(10000),
		CanMakeTransfers:   true,
	})
	store.putAccount(activeAccount(1000))

	return engineFixture{engine: engine, store: store, notifier: notifier}
}

func (f engineFixture) waitForNotification(t *testing.T) domain.Transaction {
	t.Helper()
	select {
	case txn := <-f.notifier.events:
		return txn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for movement notification")
		return domain.Transaction{}
	}
}

func TestExecuteDepositCreditsBalance(t *testing.T) {
	f := newEngineFixture(t)

	txn, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(250),
		Channel:       domain.ChannelAPI,
	})
	require.NoError(t, err)

	require.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	require.True(t, txn.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1250)))
	require.NotNil(t, txn.CompletedAt)
	require.True(t, txn.Fee.IsZero())

	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1250)))

	notified := f.waitForNotification(t)
	require.Equal(t, txn.TransactionID, notified.TransactionID)
}

func TestExecuteWithdrawalDebitsBalanceAndCounters(t *testing.T) {
	f := newEngineFixture(t)

	txn, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(400),
		Channel:       domain.ChannelATM,
	})
	require.NoError(t, err)

	require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(600)))
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(600)))

	day := time.Now().UTC().Truncate(24 * time.Hour)
	usage := f.store.usageFor("user-1", day)
	require.Equal(t, 1, usage.WithdrawalCount)
	require.True(t, usage.WithdrawalTotal.Equal(decimal.NewFromInt(400)))
}

func TestExecuteRejectionCommitsFailedRowOnly(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(5000),
		Channel:       domain.ChannelATM,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Balance and counters untouched; the FAILED row remains for audit.
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1000)))

	day := time.Now().UTC().Truncate(24 * time.Hour)
	require.Equal(t, 0, f.store.usageFor("user-1", day).WithdrawalCount)

	txns := f.store.transactions()
	require.Len(t, txns, 1)
	require.Equal(t, domain.TransactionStatusFailed, txns[0].Status)
	require.NotNil(t, txns[0].FailureReason)
	require.Equal(t, domain.ErrInsufficientFunds.Error(), *txns[0].FailureReason)
}

func TestExecuteTransferChargesFeeAndRecordsBeneficiary(t *testing.T) {
	f := newEngineFixture(t)

	txn, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeTransfer,
		Amount:        decimal.NewFromInt(200),
		Channel:       domain.ChannelWeb,
		Beneficiary: &ledger.BeneficiaryInfo{
			AccountNumber: "9876543210",
			Name:          "John Smith",
			Bank:          "First National",
		},
	})
	require.NoError(t, err)

	// 0.5% of 200 = 1.00 fee; debit is amount plus fee.
	require.True(t, txn.Fee.Equal(decimal.NewFromInt(1)))
	require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(799)))
	require.NotNil(t, txn.BeneficiaryAccountNumber)
	require.Equal(t, "9876543210", *txn.BeneficiaryAccountNumber)

	day := time.Now().UTC().Truncate(24 * time.Hour)
	usage := f.store.usageFor("user-1", day)
	require.Equal(t, 1, usage.TransferCount)
	require.True(t, usage.TransferTotal.Equal(decimal.NewFromInt(200)))
}

func TestExecuteRejectsSameAccountTransfer(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeTransfer,
		Amount:        decimal.NewFromInt(50),
		Beneficiary:   &ledger.BeneficiaryInfo{AccountNumber: "0123456789"},
	})
	require.ErrorIs(t, err, domain.ErrSameAccountTransfer)
	require.Empty(t, f.store.transactions())
}

func TestExecuteRejectsNonPositiveAmount(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.Zero,
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestExecuteUnknownAccount(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0000000000",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestExecuteRetriesOnTransactionIDCollision(t *testing.T) {
	f := newEngineFixture(t)
	f.store.duplicateAppends = 2

	txn, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	require.Len(t, f.store.transactions(), 1)
}

func TestExecuteGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newEngineFixture(t)
	f.store.duplicateAppends = 100

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrPersistenceFailure)
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1000)))
}

func TestExecuteConcurrentWithdrawalsSingleWinner(t *testing.T) {
	f := newEngineFixture(t)

	// Balance covers exactly one of the competing withdrawals.
	const workers = 8
	amount := decimal.NewFromInt(1000)

	var g errgroup.Group
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
				AccountNumber: "0123456789",
				UserID:        "user-1",
				Type:          domain.TransactionTypeWithdrawal,
				Amount:        amount,
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
	}
	require.Equal(t, 1, winners)
	require.True(t, f.store.account("0123456789").Balance.IsZero())

	completed := 0
	for _, txn := range f.store.transactions() {
		if txn.Status == domain.TransactionStatusCompleted {
			completed++
		}
	}
	require.Equal(t, 1, completed)
}

func TestExecuteFirstOfDayUsageSharedAcrossAccounts(t *testing.T) {
	f := newEngineFixture(t)

	second := activeAccount(10000)
	second.ID = "acc-2"
	second.AccountNumber = "9876543210"
	f.store.putAccount(second)

	first := activeAccount(10000)
	f.store.putAccount(first)

	// Two withdrawals by the same user against different accounts
	// share the daily counter; 3000 each exceeds the 5000 aggregate,
	// so exactly one may pass even on an empty counter row.
	accounts := []string{"0123456789", "9876543210"}
	results := make([]error, len(accounts))

	var g errgroup.Group
	for i, accountNumber := range accounts {
		i, accountNumber := i, accountNumber
		g.Go(func() error {
			_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
				AccountNumber: accountNumber,
				UserID:        "user-1",
				Type:          domain.TransactionTypeWithdrawal,
				Amount:        decimal.NewFromInt(3000),
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, domain.ErrLimitExceeded)
		}
	}
	require.Equal(t, 1, winners)

	usage := f.store.usageFor("user-1", time.Now().UTC())
	require.True(t, usage.WithdrawalTotal.Equal(decimal.NewFromInt(3000)))
}

func TestReverseWithdrawalRestoresBalance(t *testing.T) {
	f := newEngineFixture(t)

	original, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	reversal, err := f.engine.Reverse(context.Background(), original.TransactionID, "user-1")
	require.NoError(t, err)

	require.Equal(t, domain.TransactionTypeReversal, reversal.Type)
	require.True(t, reversal.BalanceAfter.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, reversal.RelatedTransactionID)
	require.Equal(t, original.TransactionID, *reversal.RelatedTransactionID)

	stored, err := f.store.FindByTransactionID(context.Background(), original.TransactionID)
	require.NoError(t, err)
	require.Equal(t, domain.TransactionStatusReversed, stored.Status)
}

func TestReverseDepositDebitsBalance(t *testing.T) {
	f := newEngineFixture(t)

	original, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	reversal, err := f.engine.Reverse(context.Background(), original.TransactionID, "user-1")
	require.NoError(t, err)
	require.True(t, reversal.BalanceAfter.Equal(decimal.NewFromInt(1000)))
}

func TestReverseDepositAfterSpendInsufficientFunds(t *testing.T) {
	f := newEngineFixture(t)

	deposit, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	// Drain the account below the deposit amount.
	_, err = f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	_, err = f.engine.Reverse(context.Background(), deposit.TransactionID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestReverseRejectsNonCompletedTransaction(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(9999),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var failedID string
	for _, txn := range f.store.transactions() {
		failedID = txn.TransactionID
	}

	_, err = f.engine.Reverse(context.Background(), failedID, "user-1")
	require.ErrorIs(t, err, domain.ErrNotReversible)
}

func TestReverseUnknownTransaction(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.Reverse(context.Background(), "TXN-does-not-exist", "user-1")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestReverseOfReversalRejected(t *testing.T) {
	f := newEngineFixture(t)

	original, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	reversal, err := f.engine.Reverse(context.Background(), original.TransactionID, "user-1")
	require.NoError(t, err)
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1000)))

	// Undoing the undo must not credit the withdrawal a second time.
	_, err = f.engine.Reverse(context.Background(), reversal.TransactionID, "user-1")
	require.ErrorIs(t, err, domain.ErrNotReversible)
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1000)))
	require.Len(t, f.store.transactions(), 2)
}

func TestReverseRetriesOnTransactionIDCollision(t *testing.T) {
	f := newEngineFixture(t)

	original, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	f.store.duplicateAppends = 2
	reversal, err := f.engine.Reverse(context.Background(), original.TransactionID, "user-1")
	require.NoError(t, err)
	require.Equal(t, domain.TransactionStatusCompleted, reversal.Status)
	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(1000)))
}

func TestReverseGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newEngineFixture(t)

	original, err := f.engine.Execute(context.Background(), ledger.MovementRequest{
		AccountNumber: "0123456789",
		UserID:        "user-1",
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	f.waitForNotification(t)

	f.store.duplicateAppends = 100
	_, err = f.engine.Reverse(context.Background(), original.TransactionID, "user-1")
	require.ErrorIs(t, err, domain.ErrPersistenceFailure)

	require.True(t, f.store.account("0123456789").Balance.Equal(decimal.NewFromInt(700)))
	stored, err := f.store.FindByTransactionID(context.Background(), original.TransactionID)
	require.NoError(t, err)
	require.Equal(t, domain.TransactionStatusCompleted, stored.Status)
}

package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/ledger"
)

func activeAccount(balance int64) domain.Account {
	return domain.Account{
		ID:                   "acc-1",
		AccountNumber:        "0123456789",
		Currency:             "USD",
		Balance:              decimal.NewFromInt(balance),
		Status:               domain.AccountStatusActive,
		IsActive:             true,
		DailyWithdrawalLimit: decimal.NewFromInt(5000),
		DailyTransferLimit:   decimal.NewFromInt(10000),
		MinimumBalance:       decimal.Zero,
		OverdraftLimit:       decimal.Zero,
	}
}

func transferUser() domain.User {
	return domain.User{
		ID:                 "user-1",
		DailyTransferLimit: decimal.NewFromInt(10000),
		CanMakeTransfers:   true,
	}
}

func TestFeeOnlyChargedOnTransfers(t *testing.T) {
	p := ledger.DefaultPolicy()

	require.True(t, p.Fee(domain.TransactionTypeDeposit, decimal.NewFromInt(100)).IsZero())
	require.True(t, p.Fee(domain.TransactionTypeWithdrawal, decimal.NewFromInt(100)).IsZero())

	fee := p.Fee(domain.TransactionTypeTransfer, decimal.NewFromInt(100))
	require.True(t, fee.Equal(decimal.NewFromFloat(0.50)), "got %s", fee)
}

func TestFeeIsCapped(t *testing.T) {
	p := ledger.DefaultPolicy()

	// 0.5% of 5000 is 25, capped at 10.
	fee := p.Fee(domain.TransactionTypeTransfer, decimal.NewFromInt(5000))
	require.True(t, fee.Equal(decimal.NewFromInt(10)), "got %s", fee)
}

func TestValidateDepositRejectsInoperableAccount(t *testing.T) {
	p := ledger.DefaultPolicy()

	frozen := activeAccount(100)
	frozen.Status = domain.AccountStatusFrozen
	frozen.IsFrozen = true

	err := p.ValidateDeposit(frozen, decimal.NewFromInt(50))
	require.ErrorIs(t, err, domain.ErrAccountNotOperable)
}

func TestValidateDepositRejectsOversizedAmount(t *testing.T) {
	p := ledger.DefaultPolicy()

	err := p.ValidateDeposit(activeAccount(0), decimal.NewFromInt(2_000_000))
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestValidateWithdrawalInsufficientFunds(t *testing.T) {
	p := ledger.DefaultPolicy()

	err := p.ValidateWithdrawal(activeAccount(100), domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.Zero,
	}, decimal.NewFromInt(101))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestValidateWithdrawalDailyLimitAggregates(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(100_000)

	// 4900 already withdrawn today against a 5000 limit.
	usage := domain.DailyLimitUsage{
		WithdrawalTotal: decimal.NewFromInt(4900),
		TransferTotal:   decimal.Zero,
	}

	require.NoError(t, p.ValidateWithdrawal(account, usage, decimal.NewFromInt(100)))

	err := p.ValidateWithdrawal(account, usage, decimal.NewFromInt(101))
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestValidateWithdrawalMinimumBalanceFloor(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(500)
	account.MinimumBalance = decimal.NewFromInt(100)

	err := p.ValidateWithdrawal(account, domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.Zero,
	}, decimal.NewFromInt(450))
	require.ErrorIs(t, err, domain.ErrBelowMinimumBalance)
}

func TestValidateWithdrawalOverdraftExtendsFloor(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(500)
	account.MinimumBalance = decimal.NewFromInt(100)
	account.OverdraftLimit = decimal.NewFromInt(100)

	require.NoError(t, p.ValidateWithdrawal(account, domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.Zero,
	}, decimal.NewFromInt(450)))
}

func TestValidateTransferIncludesFeeInFundsCheck(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(100)

	// Amount alone fits; amount plus fee does not.
	err := p.ValidateTransfer(account, transferUser(), domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.Zero,
	}, decimal.NewFromInt(100), decimal.NewFromFloat(0.50))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestValidateTransferUserLimit(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(100_000)

	user := transferUser()
	user.DailyTransferLimit = decimal.NewFromInt(500)

	err := p.ValidateTransfer(account, user, domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.Zero,
	}, decimal.NewFromInt(501), decimal.Zero)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestValidateTransferDailyAggregate(t *testing.T) {
	p := ledger.DefaultPolicy()
	account := activeAccount(100_000)

	usage := domain.DailyLimitUsage{
		WithdrawalTotal: decimal.Zero,
		TransferTotal:   decimal.NewFromInt(9500),
	}

	err := p.ValidateTransfer(account, transferUser(), usage, decimal.NewFromInt(501), decimal.Zero)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}

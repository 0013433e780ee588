package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

// Policy bounds how much may move per transaction and per day. All
// methods are pure: they evaluate freshly read state and return the
// specific rejection, or nil.
type Policy struct {
	// Single-deposit ceiling.
	MaxDepositAmount decimal.Decimal

	// Transfers cost TransferFeeRate of the amount, capped at
	// TransferFeeCap. All other movement types carry no fee.
	TransferFeeRate decimal.Decimal
	TransferFeeCap  decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		MaxDepositAmount: decimal.NewFromInt(1_000_000),
		TransferFeeRate:  decimal.NewFromFloat(0.005),
		TransferFeeCap:   decimal.NewFromInt(10),
	}
}

// Fee returns the fee charged for a movement of the given type.
func (p Policy) Fee(movementType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if movementType != domain.TransactionTypeTransfer {
		return decimal.Zero
	}
	fee := amount.Mul(p.TransferFeeRate).Round(2)
	if fee.GreaterThan(p.TransferFeeCap) {
		return p.TransferFeeCap
	}
	return fee
}

func (p Policy) ValidateDeposit(account domain.Account, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !account.Operable() {
		return domain.ErrAccountNotOperable
	}
	if amount.GreaterThan(p.MaxDepositAmount) {
		return domain.ErrLimitExceeded
	}
	return nil
}

// ValidateWithdrawal checks a debit of amount (fee already included by
// the caller) against the account's balance, per-transaction limit, the
// day's aggregate usage, and the minimum balance floor.
func (p Policy) ValidateWithdrawal(account domain.Account, usage domain.DailyLimitUsage, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !account.Operable() {
		return domain.ErrAccountNotOperable
	}
	if amount.GreaterThan(account.Balance) {
		return domain.ErrInsufficientFunds
	}
	if amount.GreaterThan(account.DailyWithdrawalLimit) {
		return domain.ErrLimitExceeded
	}
	if usage.WithdrawalTotal.Add(amount).GreaterThan(account.DailyWithdrawalLimit) {
		return domain.ErrLimitExceeded
	}
	floor := account.MinimumBalance.Sub(account.OverdraftLimit)
	if account.Balance.Sub(amount).LessThan(floor) {
		return domain.ErrBelowMinimumBalance
	}
	return nil
}

// ValidateDebit covers the non-cash debit types (PAYMENT, FEE,
// LOAN_REPAYMENT): operability, funds and the minimum-balance floor, but
// no daily cash limits.
func (p Policy) ValidateDebit(account domain.Account, total decimal.Decimal) error {
	if total.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !account.Operable() {
		return domain.ErrAccountNotOperable
	}
	if total.GreaterThan(account.Balance) {
		return domain.ErrInsufficientFunds
	}
	floor := account.MinimumBalance.Sub(account.OverdraftLimit)
	if account.Balance.Sub(total).LessThan(floor) {
		return domain.ErrBelowMinimumBalance
	}
	return nil
}

// ValidateTransfer checks a transfer debit of amount+fee against account
// and user daily transfer limits on top of the withdrawal rules.
func (p Policy) ValidateTransfer(account domain.Account, user domain.User, usage domain.DailyLimitUsage, amount, fee decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !account.Operable() {
		return domain.ErrAccountNotOperable
	}

	total := amount.Add(fee)
	if total.GreaterThan(account.Balance) {
		return domain.ErrInsufficientFunds
	}
	if amount.GreaterThan(account.DailyTransferLimit) {
		return domain.ErrLimitExceeded
	}
	if amount.GreaterThan(user.DailyTransferLimit) {
		return domain.ErrLimitExceeded
	}
	if usage.TransferTotal.Add(amount).GreaterThan(account.DailyTransferLimit) {
		return domain.ErrLimitExceeded
	}
	floor := account.MinimumBalance.Sub(account.OverdraftLimit)
	if account.Balance.Sub(total).LessThan(floor) {
		return domain.ErrBelowMinimumBalance
	}
	return nil
}

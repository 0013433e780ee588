package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
	AccountStatusFrozen    AccountStatus = "FROZEN"
)

type AccountType string

const (
	AccountTypeChecking    AccountType = "CHECKING"
	AccountTypeSavings     AccountType = "SAVINGS"
	AccountTypeMoneyMarket AccountType = "MONEY_MARKET"
	AccountTypeBusiness    AccountType = "BUSINESS"
)

type Account struct {
	ID            string
	CustomerID    string
	AccountNumber string
	AccountName   string
	AccountType   AccountType
	Currency      string

	// Balance never goes negative; the ledger engine is the only writer.
	Balance decimal.Decimal

	ACHRouting string
	SwiftCode  string
	BankName   string

	Status   AccountStatus
	IsActive bool
	IsFrozen bool
	IsClosed bool

	DailyWithdrawalLimit decimal.Decimal
	DailyTransferLimit   decimal.Decimal
	MinimumBalance       decimal.Decimal
	OverdraftLimit       decimal.Decimal

	CreatedAt    time.Time
	UpdatedAt    time.Time
	ActivatedAt  *time.Time
	ClosedAt     *time.Time
	ClosedReason *string
}

// Operable reports whether the account may participate in a money
// movement: ACTIVE status and none of the frozen/closed flags set.
func (a Account) Operable() bool {
	return a.Status == AccountStatusActive && a.IsActive && !a.IsFrozen && !a.IsClosed
}

// AccountLimitsUpdate enumerates exactly the mutable limit fields a
// caller may patch. Nil means leave unchanged.
type AccountLimitsUpdate struct {
	AccountName          *string
	DailyWithdrawalLimit *decimal.Decimal
	DailyTransferLimit   *decimal.Decimal
}

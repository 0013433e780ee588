package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLimitUsage is the per-(user, day) counter row consulted and
// incremented inside the same transaction as the balance mutation.
type DailyLimitUsage struct {
	UserID    string
	UsageDate time.Time

	TransferCount   int
	TransferTotal   decimal.Decimal
	WithdrawalCount int
	WithdrawalTotal decimal.Decimal
}

// LimitDelta is the increment applied on a successful movement.
type LimitDelta struct {
	TransferCount    int
	TransferAmount   decimal.Decimal
	WithdrawalCount  int
	WithdrawalAmount decimal.Decimal
}

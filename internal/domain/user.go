package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                 string
	Email              string
	FullName           string
	DailyTransferLimit decimal.Decimal
	CanMakeTransfers   bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

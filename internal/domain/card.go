package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardType string

const (
	CardTypeVisaDebit        CardType = "VISA_DEBIT"
	CardTypeMastercardDebit  CardType = "MASTERCARD_DEBIT"
	CardTypeVisaCredit       CardType = "VISA_CREDIT"
	CardTypeMastercardCredit CardType = "MASTERCARD_CREDIT"
)

type CardStatus string

const (
	CardStatusPending   CardStatus = "PENDING"
	CardStatusActive    CardStatus = "ACTIVE"
	CardStatusBlocked   CardStatus = "BLOCKED"
	CardStatusExpired   CardStatus = "EXPIRED"
	CardStatusCancelled CardStatus = "CANCELLED"
)

type Card struct {
	ID          string
	UserID      string
	AccountID   *string
	CardNumber  string
	CardType    CardType
	CardName    string
	CVV         string
	ExpiryMonth string
	ExpiryYear  string
	PINHash     string

	DailyLimit             decimal.Decimal
	MonthlyLimit           decimal.Decimal
	SingleTransactionLimit decimal.Decimal

	Status    CardStatus
	IsVirtual bool

	CreatedAt     time.Time
	ActivatedAt   *time.Time
	BlockedAt     *time.Time
	BlockedReason *string
}

// CardLimitsUpdate enumerates the mutable card limit fields.
type CardLimitsUpdate struct {
	DailyLimit             *decimal.Decimal
	MonthlyLimit           *decimal.Decimal
	SingleTransactionLimit *decimal.Decimal
}

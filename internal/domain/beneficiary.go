package domain

import "time"

// Beneficiary is a saved transfer counterparty, unique per
// (user, account number, bank name).
type Beneficiary struct {
	ID            string
	UserID        string
	Nickname      string
	AccountNumber string
	AccountName   string
	BankName      string
	BankCode      *string
	RoutingNumber *string
	SwiftCode     *string

	IsVerified bool
	IsFavorite bool

	CreatedAt time.Time
	LastUsed  *time.Time
}

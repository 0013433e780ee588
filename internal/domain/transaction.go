package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer         TransactionType = "TRANSFER"
	TransactionTypePayment          TransactionType = "PAYMENT"
	TransactionTypeFee              TransactionType = "FEE"
	TransactionTypeInterest         TransactionType = "INTEREST"
	TransactionTypeRefund           TransactionType = "REFUND"
	TransactionTypeReversal         TransactionType = "REVERSAL"
	TransactionTypeLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
	TransactionTypeLoanRepayment    TransactionType = "LOAN_REPAYMENT"
)

// IsCredit reports whether the type adds to the account balance.
// REVERSAL direction depends on the transaction being compensated and is
// resolved by the ledger engine, not here.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeInterest, TransactionTypeRefund, TransactionTypeLoanDisbursement:
		return true
	default:
		return false
	}
}

func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypeWithdrawal, TransactionTypeTransfer, TransactionTypePayment, TransactionTypeFee, TransactionTypeLoanRepayment:
		return true
	default:
		return false
	}
}

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
	TransactionStatusReversed   TransactionStatus = "REVERSED"
)

type TransactionChannel string

const (
	ChannelWeb    TransactionChannel = "WEB"
	ChannelMobile TransactionChannel = "MOBILE"
	ChannelATM    TransactionChannel = "ATM"
	ChannelBranch TransactionChannel = "BRANCH"
	ChannelAPI    TransactionChannel = "API"
)

type Transaction struct {
	ID            string
	TransactionID string
	UserID        string
	AccountID     string
	AccountNumber string

	Type     TransactionType
	Amount   decimal.Decimal
	Currency string
	Fee      decimal.Decimal

	BeneficiaryAccountNumber *string
	BeneficiaryName          *string
	BeneficiaryBank          *string

	Status  TransactionStatus
	Channel TransactionChannel

	// Snapshots taken atomically with the balance mutation they describe.
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal

	Description     string
	ReferenceNumber string

	// Set on REVERSAL rows: the transaction being compensated.
	RelatedTransactionID *string

	InitiatedAt   time.Time
	CompletedAt   *time.Time
	FailedAt      *time.Time
	FailureReason *string
}

package domain

import "errors"

// Business outcomes. These are expected rejections: the caller gets the
// error, balances and counters stay untouched.
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotOperable  = errors.New("account is not active or is frozen/closed")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrLimitExceeded       = errors.New("amount exceeds transaction limit")
	ErrBelowMinimumBalance = errors.New("balance would fall below required minimum")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrTransferNotAllowed  = errors.New("user is not authorized to move funds")
	ErrNotReversible       = errors.New("transaction cannot be reversed")
	ErrValidation          = errors.New("validation failed")
	ErrRecordNotFound      = errors.New("record not found")
	ErrBeneficiaryExists   = errors.New("beneficiary already exists")
)

// Infrastructure faults. Surfaced as server errors, never swallowed, and
// never followed by a partial balance update.
var (
	ErrLockTimeout         = errors.New("timed out waiting for account lock")
	ErrDuplicateIdentifier = errors.New("identifier generation exhausted retries")
	ErrPersistenceFailure  = errors.New("atomic write failed")
)

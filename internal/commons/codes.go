package commons

import (
	"errors"

	"github.com/royal-shore/core-banking/internal/domain"
)

const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeAccountNotOperable  = "ACCOUNT_NOT_OPERABLE"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeLimitExceeded       = "LIMIT_EXCEEDED"
	CodeBelowMinimumBalance = "BELOW_MINIMUM_BALANCE"
	CodeSameAccountTransfer = "SAME_ACCOUNT_TRANSFER"
	CodeNotAuthorized       = "NOT_AUTHORIZED"
	CodeRecordNotFound      = "RECORD_NOT_FOUND"
	CodeNotReversible       = "NOT_REVERSIBLE"
	CodeBeneficiaryExists   = "BENEFICIARY_EXISTS"
	CodeLockTimeout         = "LOCK_TIMEOUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// CodeFor maps a domain error to the machine-readable code surfaced to
// API callers. Unrecognized errors map to CodeInternalError so internal
// details never leak through the envelope.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, domain.ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, domain.ErrAccountNotOperable):
		return CodeAccountNotOperable
	case errors.Is(err, domain.ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, domain.ErrLimitExceeded):
		return CodeLimitExceeded
	case errors.Is(err, domain.ErrBelowMinimumBalance):
		return CodeBelowMinimumBalance
	case errors.Is(err, domain.ErrSameAccountTransfer):
		return CodeSameAccountTransfer
	case errors.Is(err, domain.ErrTransferNotAllowed):
		return CodeNotAuthorized
	case errors.Is(err, domain.ErrRecordNotFound):
		return CodeRecordNotFound
	case errors.Is(err, domain.ErrNotReversible):
		return CodeNotReversible
	case errors.Is(err, domain.ErrBeneficiaryExists):
		return CodeBeneficiaryExists
	case errors.Is(err, domain.ErrLockTimeout):
		return CodeLockTimeout
	case errors.Is(err, domain.ErrValidation):
		return CodeValidationFailed
	default:
		return CodeInternalError
	}
}

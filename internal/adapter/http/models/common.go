package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func isTenDigitAccountNumber(value string) bool {
	if len(value) != 10 {
		return false
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// validateAmount appends a message to errs unless value parses to a
// positive decimal.
func validateAmount(errs []string, field, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return append(errs, field+" is required")
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return append(errs, field+" must be numeric")
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return append(errs, field+" must be greater than zero")
	}
	return errs
}

func validChannel(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "WEB", "MOBILE", "ATM", "BRANCH", "API":
		return true
	default:
		return false
	}
}

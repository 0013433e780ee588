package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation  = "23505"
	pqLockNotAvailable = "55P03"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}

func isLockTimeout(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqLockNotAvailable
	}
	return false
}

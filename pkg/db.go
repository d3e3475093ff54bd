package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

const (
	pgCodeNotNullViolation = "23502"
	pgCodeCheckViolation   = "23514"
)

// IsCheckViolationError checks if the error is a check constraint violation error
func IsCheckViolationError(err error) bool {
	return hasPgErrorCode(err, pgCodeCheckViolation)
}

// IsNotNullViolationError checks if the error is a not null violation error
func IsNotNullViolationError(err error) bool {
	return hasPgErrorCode(err, pgCodeNotNullViolation)
}

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes.
const (
	codeUniqueViolation           = "23505"
	codeForeignKeyViolation       = "23503"
	codeCheckViolation            = "23514"
	codeInvalidTextRepresentation = "22P02"
)

// constraintViolation reports the violated constraint name when err carries a
// PostgreSQL integrity error with the given SQLSTATE code.
func constraintViolation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// UniqueViolation reports whether err is a unique constraint violation and
// which constraint was hit.
func UniqueViolation(err error) (string, bool) {
	return constraintViolation(err, codeUniqueViolation)
}

// ForeignKeyViolation reports whether err is a foreign key violation.
func ForeignKeyViolation(err error) (string, bool) {
	return constraintViolation(err, codeForeignKeyViolation)
}

// CheckViolation reports whether err is a check constraint violation.
func CheckViolation(err error) (string, bool) {
	return constraintViolation(err, codeCheckViolation)
}

// InvalidTextRepresentation reports whether err is PostgreSQL rejecting a
// literal for its column type, e.g. "abc" compared against a uuid column.
func InvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation
}

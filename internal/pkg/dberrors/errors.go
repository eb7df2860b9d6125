// Package dberrors classifies pgx errors.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CodeUniqueViolation is the SQLSTATE of a unique index conflict
const CodeUniqueViolation = "23505"

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// ViolatedUnique returns the name of the unique constraint err violated
func ViolatedUnique(err error) (string, bool) {
	pgErr, ok := pgError(err, CodeUniqueViolation)
	if !ok {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// IsDuplicateConstraintError reports a unique violation on constraintName
func IsDuplicateConstraintError(err error, constraintName string) bool {
	name, ok := ViolatedUnique(err)
	return ok && name == constraintName
}

// IsNoRows checks if a query returned no rows
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgDuplicateKeyCode = "23505"

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and PostgreSQL unique violation (23505)
// to duplicateErr, keeping the violated constraint name in the message.
// Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if constraint, ok := UniqueViolation(err); ok {
		if constraint == "" {
			return duplicateErr
		}
		return fmt.Errorf("%w: %s", duplicateErr, constraint)
	}

	return err
}

// UniqueViolation reports whether err is a PostgreSQL unique violation
// and returns the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

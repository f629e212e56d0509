package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsExclusionConflict reports whether the database rejected a write through
// the appointment overlap exclusion constraint.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// TranslateDB turns constraint violations into ConflictError so storage
// details never leak to callers. Other errors pass through unchanged.
func TranslateDB(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) || IsExclusionConflict(err) {
		return Conflict(code, message)
	}
	return err
}

package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL integrity constraint violation codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and PostgreSQL unique violation (23505)
// to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if IsUniqueViolation(err, "") {
		return duplicateErr
	}

	return err
}

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint or index. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	return violates(err, pgUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign key violation on the
// named constraint. An empty constraint matches any foreign key violation.
func IsForeignKeyViolation(err error, constraint string) bool {
	return violates(err, pgForeignKeyViolation, constraint)
}

func violates(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

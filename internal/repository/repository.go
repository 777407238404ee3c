package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports that no row matched the lookup.
	ErrNotFound = errors.New("not found in database")
	// ErrDuplicate reports a unique-constraint violation, e.g. two
	// registrations racing on the same username.
	ErrDuplicate = errors.New("duplicate key in database")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

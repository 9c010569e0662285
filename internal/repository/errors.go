package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/safarpk/safarpk/internal/domain"
)

const uniqueViolation = "23505"

// wrapErr maps driver errors onto domain errors and adds operation context.
func wrapErr(err error, resource, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Wrap(domain.ErrConflict, resource)
	}
	return errors.Wrapf(err, "%s %s", op, resource)
}

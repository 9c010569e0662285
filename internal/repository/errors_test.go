package repository

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/safarpk/safarpk/internal/domain"
)

func TestWrapErr(t *testing.T) {
	assert.NoError(t, wrapErr(nil, "user", "get"))

	err := wrapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows), "user", "get")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "user not found", err.Error())

	err = wrapErr(&pgconn.PgError{Code: "23505"}, "vehicle", "insert")
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = wrapErr(errors.New("boom"), "destination", "list")
	assert.EqualError(t, err, "list destination: boom")
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

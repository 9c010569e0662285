package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func NewValidationError(field, msg string) error {
	return ValidationError{Field: field, Msg: msg}
}

// PricingError carries the ordered pricing validation messages.
type PricingError struct {
	Messages []string
}

func (e PricingError) Error() string {
	return "invalid pricing: " + strings.Join(e.Messages, "; ")
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

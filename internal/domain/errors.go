package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by repo and service functions when the requested
// travel does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when a travel request fails
// field validation (missing pgi, malformed date, ...).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrParadox is returned when a traveler already has a trip recorded on the
// requested date. Handlers should map this to HTTP 409.
var ErrParadox = errors.New("paradox")

// ErrDuplicate is returned by the repo when an insert violates the unique
// (pgi, date) index.
var ErrDuplicate = errors.New("duplicate key")

// ValidationError carries one message per invalid request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %d invalid field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ParadoxError describes the travel that blocks a new one.
type ParadoxError struct {
	Code  string
	Place string
	Date  time.Time
}

func (e *ParadoxError) Error() string {
	return fmt.Sprintf("Paradox detected! traveler with pgi %s already traveled to %s at date %s",
		e.Code, e.Place, e.Date.Format(DateLayout))
}

func (e *ParadoxError) Unwrap() error { return ErrParadox }

// NotFoundError names the travel id that could not be found.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Travel with id %s not found!", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds returned by the services. Handlers map them to status codes
// with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInactive        = errors.New("inactive")
	ErrValidation      = errors.New("validation failed")
	ErrStorageDisabled = errors.New("report storage is not configured")
	ErrNotConfigured   = errors.New("model provider is not configured")
)

// Error carries a client-facing message and the kind it belongs to.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) error {
	return newError(ErrNotFound, "%s not found", what)
}

func invalid(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// lookupErr turns a missing row into ErrNotFound and wraps anything else.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

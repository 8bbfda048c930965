// Package apperr defines the error kinds shared by every service in the
// backend. Each kind is a sentinel; concrete errors wrap exactly one kind
// with a human-readable message, so callers dispatch with errors.Is and the
// HTTP boundary maps kinds to status codes in one place. An error wrapping
// no kind at all is treated as internal: logged in full, surfaced as a
// generic message.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation")
	// ErrAuthentication marks unknown users, wrong passwords and invalid
	// or expired sessions.
	ErrAuthentication = errors.New("authentication")
	// ErrAuthorization marks an actor lacking ownership or role.
	ErrAuthorization = errors.New("authorization")
	// ErrNotFound marks a referenced item or account that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks duplicate external refs, duplicate votes and
	// protected-account violations.
	ErrConflict = errors.New("conflict")
)

// Error pairs a kind sentinel with a caller-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so errors.Is(err, apperr.ErrConflict) works.
func (e *Error) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

func Authenticationf(format string, args ...any) error {
	return newf(ErrAuthentication, format, args...)
}

func Authorizationf(format string, args ...any) error {
	return newf(ErrAuthorization, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

// Package apperr classifies errors raised by the coordination backend.
//
// Every error that should reach a caller with a specific outcome is marked
// with one of the sentinel kinds below. Marks survive wrapping, so a
// repository error wrapped by a service is still recognised by the HTTP layer.
package apperr

import (
	"github.com/cockroachdb/errors"
)

// Kinds
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrConfiguration     = errors.New("configuration error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

// Validation reports missing or malformed input.
func Validation(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// NotFound reports an unknown id or token.
func NotFound(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

// IllegalTransition reports a guard failure for the current status.
func IllegalTransition(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrIllegalTransition)
}

// Configuration reports a missing setting or missing directory data.
func Configuration(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConfiguration)
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthorized)
}

// Forbidden reports valid credentials lacking the required role.
func Forbidden(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrForbidden)
}

// MarkValidation marks an existing error (e.g. from a validator) as a validation error.
func MarkValidation(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrValidation)
}

// WithHint attaches a user-facing hint.
func WithHint(err error, hint string) error {
	return errors.WithHint(err, hint)
}

// Hint returns the flattened hints attached to err, or "".
func Hint(err error) string {
	return errors.FlattenHints(err)
}

// Wrap re-exports the wrapping helper so callers need only this package.
var (
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Is    = errors.Is
	As    = errors.As
)

func IsValidation(err error) bool        { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsIllegalTransition(err error) bool { return errors.Is(err, ErrIllegalTransition) }
func IsConfiguration(err error) bool     { return errors.Is(err, ErrConfiguration) }
func IsUnauthorized(err error) bool      { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool         { return errors.Is(err, ErrForbidden) }

// Package errs defines the error kinds the order lifecycle engine reports.
//
// Four kinds cover every failure the engine can surface:
//   - validation: a required field is missing or malformed; nothing was written
//   - forbidden:  the actor lacks the role or ownership for the operation
//   - conflict:   the stored state did not match the transition's precondition
//   - not found:  the referenced order or admission does not exist
//
// Each kind has a sentinel usable with errors.Is, a constructor, and a
// predicate. Forbidden and conflict are deliberately distinct: retrying a
// forbidden operation as a different actor can succeed, while a conflict is
// only worth retrying after re-reading current state.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// kindError attaches a human-readable detail to one of the sentinels.
type kindError struct {
	kind   error
	detail string
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.detail)
}

func (e *kindError) Unwrap() error { return e.kind }

func Validation(format string, args ...interface{}) error {
	return &kindError{kind: ErrValidation, detail: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) error {
	return &kindError{kind: ErrForbidden, detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &kindError{kind: ErrConflict, detail: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &kindError{kind: ErrNotFound, detail: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }

// HTTPStatus maps an error to the status code handlers should respond with.
// Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsForbidden(err):
		return http.StatusForbidden
	case IsConflict(err):
		return http.StatusConflict
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

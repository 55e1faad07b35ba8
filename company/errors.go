package company

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBody is returned when the request payload is not a JSON object.
	ErrInvalidBody = errors.New("company: invalid body")

	// ErrMissingField is matched by every *MissingFieldError.
	ErrMissingField = errors.New("company: missing or empty field")

	// ErrEmptyUpdate is returned when a partial update carries no recognised field.
	ErrEmptyUpdate = errors.New("company: empty update")

	// ErrNotFound is returned when an update targets an id with no record.
	ErrNotFound = errors.New("company: not found")

	// ErrUnavailable wraps failures of the backing store.
	ErrUnavailable = errors.New("company: store unavailable")
)

// MissingFieldError reports a required field that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("company: missing or empty %q", e.Field)
}

// Is makes errors.Is(err, ErrMissingField) hold for any MissingFieldError.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidBody) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrEmptyUpdate)
}

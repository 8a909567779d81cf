package paylater

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Kind string // "user", "cart", "agreement", "instalment", "scenario"
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrRetryNotAllowed is returned when a retry targets an instalment that is
// not currently FAILED. The instalment is left unchanged.
var ErrRetryNotAllowed = errors.New("retry only allowed from FAILED")

// ErrInvalidStatus is returned when a manual status update names a value
// outside the instalment status vocabulary.
var ErrInvalidStatus = errors.New("invalid instalment status")

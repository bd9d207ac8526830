package services

import (
	"errors"
	"fmt"
)

// ErrValidation is the base error for malformed or missing input. Wrap it
// with errValidation so callers can match with errors.Is while keeping a
// specific message.
var ErrValidation = errors.New("validation failed")

func errValidation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

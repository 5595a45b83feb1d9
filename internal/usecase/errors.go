package usecase

import (
	"errors"
	"fmt"

	"inkpress/internal/repo/persistent"
)

// ErrNotFound is re-exported so handlers do not reach into the repository
// package for error mapping.
var ErrNotFound = persistent.ErrNotFound

// ValidationError marks failures caused by client input; handlers map these
// to 400 responses with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err originated from client input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

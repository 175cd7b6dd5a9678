package scope

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the caller lacks the capability an
// operation requires: anonymous reads when reads need auth, any mutation
// without the staff flag, or a create with no resolvable tenant.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

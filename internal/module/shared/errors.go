package shared

import (
	"errors"
	"strings"
)

// ErrNotFound is only surfaced when api.strict-not-found is enabled
var ErrNotFound = errors.New("record not found")

// ValidationError reports request input rejected before any query runs
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// RequireFields returns a ValidationError naming every empty field
func RequireFields(message string, fields map[string]string, order ...string) error {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return NewValidationError(message, missing...)
	}
	return nil
}

package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError is a client input problem, answered with 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MissingFields returns a ValidationError listing the missing fields, or nil.
func MissingFields(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return Invalid("Missing required fields: %s", strings.Join(fields, ", "))
}

// RequiredText trims value and appends name to missing when it is blank.
func RequiredText(value, name string, missing *[]string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		*missing = append(*missing, name)
	}
	return value
}

func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, Invalid("Missing id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Invalid("Invalid id: %s", raw)
	}
	return id, nil
}

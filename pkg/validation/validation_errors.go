package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired     = "Required"
	msgExpectedText = "Expected text"
	msgExpectedFile = "Expected a file upload"
)

// FieldErrors maps a field name to its messages, in rule order.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// FormatValidationErrors converts a validator error into user-friendly
// messages, labelled with the given field name.
func FormatValidationErrors(field string, err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(field, e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(field string, e validator.FieldError) string {
	label := fieldLabel(field)
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: %s", label, msgRequired)

	case "min", "gte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must contain at least %s character(s)", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max", "lte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must contain at most %s character(s)", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, param)

	case "oneof", "media_type":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// fieldLabel turns a form field name into a display label.
func fieldLabel(field string) string {
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

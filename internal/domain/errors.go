package domain

import "fmt"

// ValidationError a form field that failed to parse or is out of range.
// Nothing is written when a save returns one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid shorthand for a *ValidationError
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

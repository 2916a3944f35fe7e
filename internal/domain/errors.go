package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation marks caller input that fails a business rule.
var ErrValidation = errors.New("validation error")

// ValidationError names the offending input field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UnknownLocationError is returned when a token is neither an airport code
// nor a city code.
type UnknownLocationError struct {
	Token string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("Unknown airport or city code: %s", e.Token)
}

// InField attaches the request field the token came from.
func (e *UnknownLocationError) InField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: e.Error()}
}

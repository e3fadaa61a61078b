package services

import (
	"errors"

	"github.com/Kariqs/decorshop/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrCartEmpty          = errors.New("cart is empty")
	ErrNotInCart          = errors.New("product is not in the cart")
	ErrUnknownAction      = errors.New("unknown cart action")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries the message shown to the user for the first
// field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage returns the text to flash for err, or "" when the error is not
// meant for the user.
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return ""
}

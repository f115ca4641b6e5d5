package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when no order matches the given ID
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductNotFound is returned when a requested line item
	// references a product that does not exist or is inactive
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a product cannot cover the
	// requested quantity
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError rejects an order request before it touches storage
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a request field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

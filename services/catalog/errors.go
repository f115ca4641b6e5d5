package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when no active product matches the
	// given ID
	ErrProductNotFound = errors.New("product not found")

	// ErrReviewExists is returned when the user has already reviewed
	// the product
	ErrReviewExists = errors.New("review already exists for this product")
)

// ValidationError rejects a catalog request before it touches storage
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

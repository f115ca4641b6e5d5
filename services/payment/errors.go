package payment

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced across the repository and usecase layers
var (
	// ErrTransactionAlreadyComplete is returned when a completion is
	// attempted on a transaction already in a terminal state
	ErrTransactionAlreadyComplete = errors.New("transaction already complete")

	// ErrTransactionNotFound is returned when no transaction matches
	// the given reference or checkout request ID
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrOrderNotFound is returned when the order to be paid does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderAlreadyPaid is returned when payment is initiated against
	// an order that has already been paid
	ErrOrderAlreadyPaid = errors.New("order already paid")

	// ErrPaymentInProgress is returned when another initiation already
	// holds the per-order lock
	ErrPaymentInProgress = errors.New("payment already in progress for this order")
)

// ValidationError rejects a request before it reaches the gateway
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

// AuthError means the gateway rejected our credentials. It is never
// retried; the credential set has to be fixed by an operator.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "gateway authentication failed: " + e.Message
}

// TransportError wraps a network failure or timeout talking to the
// gateway. A timeout does not mean the push failed, only that the
// outcome is unknown.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GatewayError means the gateway answered but refused the request
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code == "" {
		return "gateway rejected request: " + e.Message
	}
	return fmt.Sprintf("gateway rejected request (%s): %s", e.Code, e.Message)
}

// CorrelationError means an inbound callback references a checkout
// request ID we have no record of
type CorrelationError struct {
	CheckoutRequestID string
}

func (e *CorrelationError) Error() string {
	return "no transaction for checkout request " + e.CheckoutRequestID
}

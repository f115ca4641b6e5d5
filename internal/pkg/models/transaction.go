package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the state of an M-Pesa transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted out of s.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed || s == TransactionStatusCancelled
}

// IsValidTransition checks if a status transition is allowed
func IsValidTransition(from, to TransactionStatus) bool {
	validTransitions := map[TransactionStatus][]TransactionStatus{
		TransactionStatusPending: {TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusCancelled},
		// No transitions allowed from terminal states
		TransactionStatusSuccess:   {},
		TransactionStatusFailed:    {},
		TransactionStatusCancelled: {},
	}

	allowed, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, validTo := range allowed {
		if validTo == to {
			return true
		}
	}

	return false
}

// Transaction represents a single M-Pesa STK push payment attempt.
// CheckoutRequestID is the sole correlation key for inbound callbacks;
// both gateway identifiers are empty until initiation succeeds and are
// immutable afterwards.
type Transaction struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	TransactionID     string            `json:"transaction_id" db:"transaction_id"`
	OrderID           uuid.UUID         `json:"order_id" db:"order_id"`
	MerchantRequestID string            `json:"merchant_request_id" db:"merchant_request_id"`
	CheckoutRequestID string            `json:"checkout_request_id" db:"checkout_request_id"`
	PhoneNumber       string            `json:"phone_number" db:"phone_number"`
	Amount            decimal.Decimal   `json:"amount" db:"amount"`
	Status            TransactionStatus `json:"status" db:"status"`
	IsComplete        bool              `json:"is_complete" db:"is_complete"`

	// Gateway callback fields
	ResultCode         *int       `json:"result_code,omitempty" db:"result_code"`
	ResultDescription  string     `json:"result_description" db:"result_description"`
	MpesaReceiptNumber string     `json:"mpesa_receipt_number" db:"mpesa_receipt_number"`
	TransactionDate    *time.Time `json:"transaction_date,omitempty" db:"transaction_date"`

	// Raw payloads retained verbatim for audit
	InitRequestData json.RawMessage `json:"init_request_data,omitempty" db:"init_request_data"`
	CallbackData    json.RawMessage `json:"callback_data,omitempty" db:"callback_data"`

	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	CallbackReceivedAt *time.Time `json:"callback_received_at,omitempty" db:"callback_received_at"`
}

// NewTransactionRef generates a locally unique transaction reference
func NewTransactionRef() string {
	return "MPESA" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

// IsSuccessful reports whether the payment reached its success terminal state
func (t *Transaction) IsSuccessful() bool {
	return t.Status == TransactionStatusSuccess && t.IsComplete
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction %s (%s %s)", t.TransactionID, t.Amount.String(), t.Status)
}

// InitiatePaymentRequest is the storefront payment-initiation payload
type InitiatePaymentRequest struct {
	OrderID     string `json:"order_id"`
	PhoneNumber string `json:"phone_number"`
}

// InitiatePaymentResponse is returned to the storefront client after an
// STK push has been accepted or rejected by the gateway
type InitiatePaymentResponse struct {
	TransactionID   string `json:"transaction_id,omitempty"`
	CustomerMessage string `json:"customer_message,omitempty"`
}

// PaymentCompletedEvent is published on NATS once a transaction reaches
// a terminal state and the linked order has been synchronized
type PaymentCompletedEvent struct {
	TransactionID      string            `json:"transaction_id"`
	OrderID            string            `json:"order_id"`
	OrderNumber        string            `json:"order_number"`
	Status             TransactionStatus `json:"status"`
	MpesaReceiptNumber string            `json:"mpesa_receipt_number,omitempty"`
	Amount             decimal.Decimal   `json:"amount"`
	PhoneNumber        string            `json:"phone_number"`
	CompletedAt        time.Time         `json:"completed_at"`
}

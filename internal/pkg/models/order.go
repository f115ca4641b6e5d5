package models

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewOrderNumber generates a human-readable order number of the form
// ORDyyyymmddNNNNNN. Uniqueness is enforced by the database; callers
// retry on collision.
func NewOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD%s%06d", t.Format("20060102"), rand.Intn(1000000))
}

// OrderStatus represents the fulfillment stage of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Order represents a customer order. The payment reconciler is the sole
// writer of PaymentStatus, Status, PaidAt and TransactionID on the
// success/failure path.
type Order struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	OrderNumber   string        `json:"order_number" db:"order_number"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`

	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`

	ShippingAddress json.RawMessage `json:"shipping_address,omitempty" db:"shipping_address"`
	CustomerEmail   string          `json:"customer_email" db:"customer_email"`
	CustomerPhone   string          `json:"customer_phone" db:"customer_phone"`

	// External receipt reference written by the payment reconciler
	TransactionID string `json:"transaction_id" db:"transaction_id"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// CanBeCancelled reports whether the order is still cancellable
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// OrderItem is a line item snapshot taken at order time
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	ProductSKU  string          `json:"product_sku" db:"product_sku"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// CreateOrderRequest is the storefront order-creation payload
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	ShippingAddress json.RawMessage   `json:"shipping_address"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
}

// CreateOrderItem is one requested line item
type CreateOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderCreatedEvent is published on NATS when a new order is placed
type OrderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderPaidEvent is published on NATS when an order is marked paid
type OrderPaidEvent struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAt      time.Time       `json:"paid_at"`
}

package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// PaymentGW defines the interface for payment gateway operations
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/waithaka/dukasoko/services/payment PaymentGW
type PaymentGW interface {
	// STKPush asks the gateway to deliver a payment prompt to the
	// customer's handset. phone must already be normalized to the
	// 254XXXXXXXXX form.
	STKPush(ctx context.Context, phone string, amount decimal.Decimal, accountRef, description string) (*models.STKPushResponse, error)

	// QueryStatus asks the gateway for the current state of a push
	QueryStatus(ctx context.Context, checkoutRequestID string) (*models.STKQueryResponse, error)

	PublishPaymentCompleted(ctx context.Context, event models.PaymentCompletedEvent) error
	PublishPaymentFailed(ctx context.Context, event models.PaymentCompletedEvent) error
	PublishOrderPaid(ctx context.Context, event models.OrderPaidEvent) error
}

package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// PaymentUC defines the interface for payment business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/waithaka/dukasoko/services/payment PaymentUC
type PaymentUC interface {
	InitiatePayment(ctx context.Context, userID uuid.UUID, req *models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error)
	HandleCallback(ctx context.Context, delivery *models.WebhookDelivery) (*models.CallbackAck, int)
	GetTransaction(ctx context.Context, userID uuid.UUID, ref string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error)
	RequeryTransaction(ctx context.Context, ref string) (*models.Transaction, error)
	CancelTransaction(ctx context.Context, ref string) (*models.Transaction, error)
	GatewayConfig() map[string]interface{}

	// StartSweep runs the background reconciliation sweep until ctx is
	// cancelled
	StartSweep(ctx context.Context)
}

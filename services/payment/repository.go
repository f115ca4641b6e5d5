package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// PaymentRepo defines the interface for payment data access operations
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/waithaka/dukasoko/services/payment PaymentRepo
type PaymentRepo interface {
	CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	GetTransactionByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.Transaction, error)
	GetTransactionByRef(ctx context.Context, ref string) (*models.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error)
	ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]*models.Transaction, error)

	// CompleteTransaction applies a terminal outcome to the transaction
	// identified by checkoutRequestID and synchronizes the linked order
	// in the same database transaction. It returns
	// ErrTransactionAlreadyComplete when the row is already terminal.
	CompleteTransaction(ctx context.Context, checkoutRequestID string, completion *models.TransactionCompletion) (*models.Transaction, error)

	// GetOrderForPayment loads the order a payment is being initiated
	// against
	GetOrderForPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error)

	CreateWebhookLog(ctx context.Context, log *models.WebhookLog) (*models.WebhookLog, error)
	UpdateWebhookLog(ctx context.Context, id uuid.UUID, transactionID *uuid.UUID, responseStatus int) error
}

package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// OrderUC defines the interface for order business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/waithaka/dukasoko/services/order OrderUC
type OrderUC interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error)
}

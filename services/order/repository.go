package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// OrderRepo defines the interface for order data access operations
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/waithaka/dukasoko/services/order OrderRepo
type OrderRepo interface {
	// CreateOrder inserts the order with its line items and decrements
	// product stock in one database transaction
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error)

	// GetProductsForOrder loads the products referenced by an order
	// request so prices and stock can be checked at creation time
	GetProductsForOrder(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, error)
}

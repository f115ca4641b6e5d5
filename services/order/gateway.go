package order

import (
	"context"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// OrderGW defines the interface for order gateway operations
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/waithaka/dukasoko/services/order OrderGW
type OrderGW interface {
	PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
}

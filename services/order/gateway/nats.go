package gateway

import (
	"context"
	"encoding/json"

	"github.com/waithaka/dukasoko/internal/pkg/constants"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	natspkg "github.com/waithaka/dukasoko/internal/pkg/nats"
	"github.com/waithaka/dukasoko/services/order"
)

// OrderGW publishes order lifecycle events
type OrderGW struct {
	natsClient *natspkg.Client
}

// NewOrderGW creates a new order gateway
func NewOrderGW(natsClient *natspkg.Client) order.OrderGW {
	return &OrderGW{
		natsClient: natsClient,
	}
}

// PublishOrderCreated publishes an order created event to NATS
func (g *OrderGW) PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectOrderCreated, data)
}

package gateway

import (
	"context"
	"encoding/json"

	"github.com/waithaka/dukasoko/internal/pkg/constants"
	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// PublishPaymentCompleted publishes a payment completed event to NATS
func (g *PaymentGW) PublishPaymentCompleted(ctx context.Context, event models.PaymentCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectPaymentCompleted, data)
}

// PublishPaymentFailed publishes a payment failed event to NATS
func (g *PaymentGW) PublishPaymentFailed(ctx context.Context, event models.PaymentCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectPaymentFailed, data)
}

// PublishOrderPaid publishes an order paid event to NATS
func (g *PaymentGW) PublishOrderPaid(ctx context.Context, event models.OrderPaidEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectOrderPaid, data)
}

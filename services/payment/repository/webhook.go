package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// CreateWebhookLog records an inbound callback delivery before any
// processing is attempted
func (r *PaymentRepo) CreateWebhookLog(ctx context.Context, log *models.WebhookLog) (*models.WebhookLog, error) {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO mpesa_webhook_logs (
			id, transaction_id, payload, headers, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		log.ID,
		log.TransactionID,
		log.Payload,
		log.Headers,
		log.IPAddress,
		log.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log: %w", err)
	}

	return log, nil
}

// UpdateWebhookLog attaches the matched transaction and the HTTP status
// returned to the gateway
func (r *PaymentRepo) UpdateWebhookLog(ctx context.Context, id uuid.UUID, transactionID *uuid.UUID, responseStatus int) error {
	query := `
		UPDATE mpesa_webhook_logs
		SET transaction_id = $1, response_status = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, transactionID, responseStatus, id)
	if err != nil {
		return fmt.Errorf("failed to update webhook log: %w", err)
	}

	return nil
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WebhookLog is an append-only record of one inbound callback delivery.
// It is written before correlation is attempted, so it survives even
// when the payload matches no known transaction, and is only touched
// again to attach the HTTP status returned to the gateway.
type WebhookLog struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	TransactionID  *uuid.UUID      `json:"transaction_id,omitempty" db:"transaction_id"`
	Payload        json.RawMessage `json:"payload" db:"payload"`
	Headers        json.RawMessage `json:"headers" db:"headers"`
	IPAddress      string          `json:"ip_address" db:"ip_address"`
	ResponseStatus *int            `json:"response_status,omitempty" db:"response_status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

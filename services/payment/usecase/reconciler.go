package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
)

// Acknowledgement bodies returned to the gateway. The gateway only
// looks at the HTTP status, but we always answer with a well-formed
// body regardless of what processing did.
var (
	ackAccepted = models.CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}
	ackRejected = models.CallbackAck{ResultCode: 1, ResultDesc: "Rejected"}
)

// HandleCallback reconciles one inbound gateway callback. The delivery
// is written to the webhook audit log before any processing so that
// malformed and uncorrelatable payloads still leave a trace. The
// returned status is what the HTTP handler answers the gateway with.
func (uc *paymentUC) HandleCallback(ctx context.Context, delivery *models.WebhookDelivery) (*models.CallbackAck, int) {
	wlog, err := uc.paymentRepo.CreateWebhookLog(ctx, &models.WebhookLog{
		Payload:   delivery.Payload,
		Headers:   delivery.Headers,
		IPAddress: delivery.IPAddress,
	})
	if err != nil {
		// Processing continues; losing the audit row must not lose
		// the payment confirmation itself
		logger.Error("Failed to write webhook log", logger.Err(err))
		wlog = nil
	}

	ack, status, txnID := uc.processCallback(ctx, delivery.Payload)

	if wlog != nil {
		if err := uc.paymentRepo.UpdateWebhookLog(ctx, wlog.ID, txnID, status); err != nil {
			logger.Warn("Failed to update webhook log", logger.Err(err))
		}
	}

	return ack, status
}

func (uc *paymentUC) processCallback(ctx context.Context, payload []byte) (*models.CallbackAck, int, *uuid.UUID) {
	var envelope models.STKCallbackEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		logger.Warn("Malformed callback payload", logger.Err(err))
		return &ackRejected, http.StatusBadRequest, nil
	}

	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		logger.Warn("Callback missing CheckoutRequestID")
		return &ackRejected, http.StatusBadRequest, nil
	}

	txn, err := uc.paymentRepo.GetTransactionByCheckoutRequestID(ctx, cb.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			corrErr := &payment.CorrelationError{CheckoutRequestID: cb.CheckoutRequestID}
			logger.Warn("Uncorrelatable callback", logger.Err(corrErr))
			return &ackRejected, http.StatusBadRequest, nil
		}
		logger.Error("Failed to load transaction for callback",
			logger.String("checkout_request_id", cb.CheckoutRequestID),
			logger.Err(err))
		return &ackRejected, http.StatusInternalServerError, nil
	}

	if txn.IsComplete {
		// Duplicate delivery of an already reconciled outcome
		logger.Info("Duplicate callback ignored",
			logger.String("transaction_id", txn.TransactionID),
			logger.String("checkout_request_id", cb.CheckoutRequestID))
		return &ackAccepted, http.StatusOK, &txn.ID
	}

	completion, err := uc.buildCompletion(txn, &cb, payload)
	if err != nil {
		logger.Warn("Rejected callback for pending transaction",
			logger.String("transaction_id", txn.TransactionID),
			logger.Err(err))
		return &ackRejected, http.StatusBadRequest, &txn.ID
	}

	updated, err := uc.paymentRepo.CompleteTransaction(ctx, cb.CheckoutRequestID, completion)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionAlreadyComplete) {
			// Lost the race against a concurrent delivery
			return &ackAccepted, http.StatusOK, &txn.ID
		}
		logger.Error("Failed to complete transaction",
			logger.String("transaction_id", txn.TransactionID),
			logger.Err(err))
		return &ackRejected, http.StatusInternalServerError, &txn.ID
	}

	uc.publishOutcome(ctx, updated)

	logger.Info("Transaction reconciled",
		logger.String("transaction_id", updated.TransactionID),
		logger.String("status", string(updated.Status)),
		logger.Int("result_code", completion.ResultCode))

	return &ackAccepted, http.StatusOK, &updated.ID
}

// buildCompletion interprets the callback outcome. ResultCode zero is
// the only success signal; everything else is a failure whose
// description we keep verbatim.
func (uc *paymentUC) buildCompletion(txn *models.Transaction, cb *models.STKCallback, payload []byte) (*models.TransactionCompletion, error) {
	completion := &models.TransactionCompletion{
		ResultCode:        cb.ResultCode,
		ResultDescription: cb.ResultDesc,
		CallbackData:      payload,
		ReceivedAt:        time.Now(),
	}

	if cb.ResultCode != 0 {
		completion.Status = models.TransactionStatusFailed
		return completion, nil
	}

	conf, err := cb.Confirmation()
	if err != nil {
		return nil, err
	}

	completion.Status = models.TransactionStatusSuccess
	completion.MpesaReceiptNumber = conf.ReceiptNumber
	completion.PhoneNumber = conf.PhoneNumber
	completion.TransactionDate = conf.TransactionAt

	confirmed := decimal.NewFromFloat(conf.Amount)
	if !confirmed.IsZero() && !confirmed.Equal(txn.Amount) {
		logger.Warn("Confirmed amount differs from requested amount",
			logger.String("transaction_id", txn.TransactionID),
			logger.String("requested", txn.Amount.String()),
			logger.String("confirmed", confirmed.String()))
	}

	return completion, nil
}

// publishOutcome emits the terminal-state events. Publish failures are
// logged only; the database is the source of truth.
func (uc *paymentUC) publishOutcome(ctx context.Context, txn *models.Transaction) {
	event := models.PaymentCompletedEvent{
		TransactionID:      txn.TransactionID,
		OrderID:            txn.OrderID.String(),
		Status:             txn.Status,
		MpesaReceiptNumber: txn.MpesaReceiptNumber,
		Amount:             txn.Amount,
		PhoneNumber:        txn.PhoneNumber,
		CompletedAt:        time.Now(),
	}

	if txn.Status == models.TransactionStatusSuccess {
		if err := uc.paymentGW.PublishPaymentCompleted(ctx, event); err != nil {
			logger.Warn("Failed to publish payment completed event",
				logger.String("transaction_id", txn.TransactionID),
				logger.Err(err))
		}

		paidAt := time.Now()
		if txn.TransactionDate != nil {
			paidAt = *txn.TransactionDate
		}
		orderEvent := models.OrderPaidEvent{
			OrderID:     txn.OrderID.String(),
			TotalAmount: txn.Amount,
			PaidAt:      paidAt,
		}
		if err := uc.paymentGW.PublishOrderPaid(ctx, orderEvent); err != nil {
			logger.Warn("Failed to publish order paid event",
				logger.String("order_id", txn.OrderID.String()),
				logger.Err(err))
		}
		return
	}

	if err := uc.paymentGW.PublishPaymentFailed(ctx, event); err != nil {
		logger.Warn("Failed to publish payment failed event",
			logger.String("transaction_id", txn.TransactionID),
			logger.Err(err))
	}
}

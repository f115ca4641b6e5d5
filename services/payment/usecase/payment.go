package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/waithaka/dukasoko/internal/pkg/constants"
	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/internal/utils"
	"github.com/waithaka/dukasoko/services/payment"
)

// initiationLockTTL bounds how long an order stays locked while we wait
// for the customer to act on the STK prompt
const initiationLockTTL = 90 * time.Second

// LockClient is the subset of the Redis client used for the per-order
// initiation lock
type LockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// paymentUC implements the payment.PaymentUC interface
type paymentUC struct {
	cfg         *models.Config
	paymentRepo payment.PaymentRepo
	paymentGW   payment.PaymentGW
	redisClient LockClient
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(
	cfg *models.Config,
	paymentRepo payment.PaymentRepo,
	paymentGW payment.PaymentGW,
	redisClient LockClient,
) (payment.PaymentUC, error) {
	return &paymentUC{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		paymentGW:   paymentGW,
		redisClient: redisClient,
	}, nil
}

// InitiatePayment validates the request, pushes an STK prompt to the
// customer's handset and records the pending transaction. No row is
// written when the gateway rejects the push.
func (uc *paymentUC) InitiatePayment(ctx context.Context, userID uuid.UUID, req *models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error) {
	phone, err := utils.ValidatePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, payment.NewValidationError("phone_number", err.Error())
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, payment.NewValidationError("order_id", "must be a valid order ID")
	}

	order, err := uc.paymentRepo.GetOrderForPayment(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		// Do not leak other customers' orders
		return nil, payment.ErrOrderNotFound
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, payment.ErrOrderAlreadyPaid
	}

	if err := uc.checkAmountBounds(order.TotalAmount); err != nil {
		return nil, err
	}

	// One in-flight initiation per order
	lockKey := fmt.Sprintf(constants.KeyPaymentOrderLock, order.ID)
	acquired, err := uc.redisClient.SetNX(ctx, lockKey, time.Now().Unix(), initiationLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire payment lock: %w", err)
	}
	if !acquired {
		return nil, payment.ErrPaymentInProgress
	}

	description := "Payment for order " + order.OrderNumber
	pushResp, err := uc.paymentGW.STKPush(ctx, phone, order.TotalAmount, order.OrderNumber, description)
	if err != nil {
		// Release the lock so the customer can retry immediately
		if delErr := uc.redisClient.Delete(ctx, lockKey); delErr != nil {
			logger.Warn("Failed to release payment lock",
				logger.String("order_id", order.ID.String()),
				logger.Err(delErr))
		}
		logger.Error("STK push failed",
			logger.String("order_id", order.ID.String()),
			logger.Err(err))
		return nil, err
	}

	initData, _ := json.Marshal(pushResp)
	txn := &models.Transaction{
		TransactionID:     models.NewTransactionRef(),
		OrderID:           order.ID,
		MerchantRequestID: pushResp.MerchantRequestID,
		CheckoutRequestID: pushResp.CheckoutRequestID,
		PhoneNumber:       phone,
		Amount:            order.TotalAmount,
		Status:            models.TransactionStatusPending,
		InitRequestData:   initData,
	}

	created, err := uc.paymentRepo.CreateTransaction(ctx, txn)
	if err != nil {
		// The push is already on its way to the handset; the
		// reconciliation sweep cannot recover a row we never wrote,
		// so this is the one failure an operator has to chase.
		logger.Error("Failed to record accepted STK push",
			logger.String("checkout_request_id", pushResp.CheckoutRequestID),
			logger.String("order_id", order.ID.String()),
			logger.Err(err))
		return nil, err
	}

	logger.Info("Payment initiated",
		logger.String("transaction_id", created.TransactionID),
		logger.String("order_number", order.OrderNumber),
		logger.String("checkout_request_id", created.CheckoutRequestID))

	return &models.InitiatePaymentResponse{
		TransactionID:   created.TransactionID,
		CustomerMessage: pushResp.CustomerMessage,
	}, nil
}

func (uc *paymentUC) checkAmountBounds(amount decimal.Decimal) error {
	min := decimal.NewFromFloat(uc.cfg.Mpesa.MinAmount)
	max := decimal.NewFromFloat(uc.cfg.Mpesa.MaxAmount)

	if amount.LessThan(min) {
		return payment.NewValidationError("amount",
			fmt.Sprintf("order total %s is below the minimum of %s", amount, min))
	}
	if amount.GreaterThan(max) {
		return payment.NewValidationError("amount",
			fmt.Sprintf("order total %s exceeds the maximum of %s", amount, max))
	}
	return nil
}

// GetTransaction retrieves one of the user's transactions by reference
func (uc *paymentUC) GetTransaction(ctx context.Context, userID uuid.UUID, ref string) (*models.Transaction, error) {
	txn, err := uc.paymentRepo.GetTransactionByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	order, err := uc.paymentRepo.GetOrderForPayment(ctx, txn.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, payment.ErrTransactionNotFound
	}

	return txn, nil
}

// ListTransactions retrieves the user's transactions, newest first
func (uc *paymentUC) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.paymentRepo.ListTransactionsByUser(ctx, userID, limit, offset)
}

// CancelTransaction force-cancels a stuck pending transaction. This is
// an operator action; callbacks and status queries never produce the
// cancelled state.
func (uc *paymentUC) CancelTransaction(ctx context.Context, ref string) (*models.Transaction, error) {
	txn, err := uc.paymentRepo.GetTransactionByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	if txn.IsComplete {
		return nil, payment.ErrTransactionAlreadyComplete
	}

	completion := &models.TransactionCompletion{
		Status:            models.TransactionStatusCancelled,
		ResultCode:        -1,
		ResultDescription: "Cancelled by operator",
		ReceivedAt:        time.Now(),
	}

	updated, err := uc.paymentRepo.CompleteTransaction(ctx, txn.CheckoutRequestID, completion)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction cancelled by operator",
		logger.String("transaction_id", updated.TransactionID))

	return updated, nil
}

// GatewayConfig exposes the non-secret gateway settings for operators
func (uc *paymentUC) GatewayConfig() map[string]interface{} {
	environment := "sandbox"
	if uc.cfg.Mpesa.IsLive {
		environment = "live"
	}
	return map[string]interface{}{
		"environment":         environment,
		"business_short_code": uc.cfg.Mpesa.BusinessShortCode,
		"callback_url":        uc.cfg.Mpesa.CallbackURL,
		"min_amount":          uc.cfg.Mpesa.MinAmount,
		"max_amount":          uc.cfg.Mpesa.MaxAmount,
		"sweep_enabled":       uc.cfg.Mpesa.SweepEnabled,
	}
}

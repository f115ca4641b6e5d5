package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
)

type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

func NewPaymentRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

const transactionColumns = `
	id, transaction_id, order_id, merchant_request_id, checkout_request_id,
	phone_number, amount, status, is_complete,
	result_code, result_description, mpesa_receipt_number, transaction_date,
	init_request_data, callback_data,
	created_at, updated_at, callback_received_at
`

// CreateTransaction inserts a new pending transaction
func (r *PaymentRepo) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	query := `
		INSERT INTO mpesa_transactions (
			id, transaction_id, order_id, merchant_request_id, checkout_request_id,
			phone_number, amount, status, is_complete, init_request_data,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		txn.ID,
		txn.TransactionID,
		txn.OrderID,
		txn.MerchantRequestID,
		txn.CheckoutRequestID,
		txn.PhoneNumber,
		txn.Amount,
		txn.Status,
		txn.IsComplete,
		txn.InitRequestData,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return txn, nil
}

// GetTransactionByCheckoutRequestID retrieves a transaction by the
// gateway's checkout request ID
func (r *PaymentRepo) GetTransactionByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM mpesa_transactions WHERE checkout_request_id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, checkoutRequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// GetTransactionByRef retrieves a transaction by its local reference
func (r *PaymentRepo) GetTransactionByRef(ctx context.Context, ref string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM mpesa_transactions WHERE transaction_id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListTransactionsByUser retrieves transactions for orders belonging to
// the given user, newest first
func (r *PaymentRepo) ListTransactionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error) {
	query := `
		SELECT t.id, t.transaction_id, t.order_id, t.merchant_request_id, t.checkout_request_id,
			t.phone_number, t.amount, t.status, t.is_complete,
			t.result_code, t.result_description, t.mpesa_receipt_number, t.transaction_date,
			t.init_request_data, t.callback_data,
			t.created_at, t.updated_at, t.callback_received_at
		FROM mpesa_transactions t
		JOIN orders o ON o.id = t.order_id
		WHERE o.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	txns := []*models.Transaction{}
	if err := r.db.SelectContext(ctx, &txns, query, userID, limit, offset); err != nil {
		return nil, err
	}

	return txns, nil
}

// ListStalePending retrieves pending transactions whose callback has
// not arrived within the given age, oldest first
func (r *PaymentRepo) ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM mpesa_transactions
		WHERE status = $1 AND is_complete = false AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	cutoff := time.Now().Add(-olderThan)

	txns := []*models.Transaction{}
	if err := r.db.SelectContext(ctx, &txns, query, models.TransactionStatusPending, cutoff, limit); err != nil {
		return nil, err
	}

	return txns, nil
}

// CompleteTransaction applies a terminal outcome to the transaction and
// synchronizes the linked order in one database transaction. The row is
// locked before the terminal check so that concurrent deliveries of the
// same callback serialize; the loser sees is_complete and backs off.
func (r *PaymentRepo) CompleteTransaction(ctx context.Context, checkoutRequestID string, completion *models.TransactionCompletion) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT ` + transactionColumns + `
		FROM mpesa_transactions
		WHERE checkout_request_id = $1
		FOR UPDATE
	`

	var txn models.Transaction
	err = tx.GetContext(ctx, &txn, lockQuery, checkoutRequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	if txn.IsComplete {
		return &txn, payment.ErrTransactionAlreadyComplete
	}

	if !models.IsValidTransition(txn.Status, completion.Status) {
		return nil, fmt.Errorf("invalid status transition %s -> %s for %s",
			txn.Status, completion.Status, txn.TransactionID)
	}

	now := time.Now()
	updateQuery := `
		UPDATE mpesa_transactions SET
			status = $1,
			is_complete = true,
			result_code = $2,
			result_description = $3,
			mpesa_receipt_number = $4,
			transaction_date = $5,
			callback_data = $6,
			callback_received_at = $7,
			updated_at = $8
		WHERE id = $9
	`

	_, err = tx.ExecContext(
		ctx,
		updateQuery,
		completion.Status,
		completion.ResultCode,
		completion.ResultDescription,
		completion.MpesaReceiptNumber,
		completion.TransactionDate,
		completion.CallbackData,
		completion.ReceivedAt,
		now,
		txn.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	switch completion.Status {
	case models.TransactionStatusSuccess:
		orderQuery := `
			UPDATE orders SET
				payment_status = $1,
				status = $2,
				transaction_id = $3,
				paid_at = $4,
				updated_at = $5
			WHERE id = $6
		`
		paidAt := completion.TransactionDate
		if paidAt == nil {
			paidAt = &now
		}
		_, err = tx.ExecContext(ctx, orderQuery,
			models.PaymentStatusPaid,
			models.OrderStatusConfirmed,
			completion.MpesaReceiptNumber,
			paidAt,
			now,
			txn.OrderID,
		)
	case models.TransactionStatusFailed, models.TransactionStatusCancelled:
		// Never downgrade an order another transaction already paid
		orderQuery := `
			UPDATE orders SET
				payment_status = $1,
				updated_at = $2
			WHERE id = $3 AND payment_status <> $4
		`
		_, err = tx.ExecContext(ctx, orderQuery,
			models.PaymentStatusFailed,
			now,
			txn.OrderID,
			models.PaymentStatusPaid,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	resultCode := completion.ResultCode
	txn.Status = completion.Status
	txn.IsComplete = true
	txn.ResultCode = &resultCode
	txn.ResultDescription = completion.ResultDescription
	txn.MpesaReceiptNumber = completion.MpesaReceiptNumber
	txn.TransactionDate = completion.TransactionDate
	txn.CallbackData = completion.CallbackData
	txn.CallbackReceivedAt = &completion.ReceivedAt
	txn.UpdatedAt = now

	return &txn, nil
}

// GetOrderForPayment loads the order a payment is being initiated against
func (r *PaymentRepo) GetOrderForPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, user_id, order_number, status, payment_status, payment_method,
			subtotal, shipping_cost, total_amount,
			shipping_address, customer_email, customer_phone, transaction_id,
			created_at, updated_at, paid_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, payment.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

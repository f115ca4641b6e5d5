package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
	"github.com/waithaka/dukasoko/services/payment/repository"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func transactionRows(txn *models.Transaction) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "transaction_id", "order_id", "merchant_request_id", "checkout_request_id",
		"phone_number", "amount", "status", "is_complete",
		"result_code", "result_description", "mpesa_receipt_number", "transaction_date",
		"init_request_data", "callback_data",
		"created_at", "updated_at", "callback_received_at",
	}).AddRow(
		txn.ID, txn.TransactionID, txn.OrderID, txn.MerchantRequestID, txn.CheckoutRequestID,
		txn.PhoneNumber, txn.Amount.String(), txn.Status, txn.IsComplete,
		txn.ResultCode, txn.ResultDescription, txn.MpesaReceiptNumber, txn.TransactionDate,
		txn.InitRequestData, txn.CallbackData,
		txn.CreatedAt, txn.UpdatedAt, txn.CallbackReceivedAt,
	)
}

func pendingTransaction() *models.Transaction {
	return &models.Transaction{
		ID:                uuid.New(),
		TransactionID:     "MPESAABCDE12345",
		OrderID:           uuid.New(),
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_191220191020363925",
		PhoneNumber:       "254712345678",
		Amount:            decimal.NewFromInt(1500),
		Status:            models.TransactionStatusPending,
		CreatedAt:         time.Now().Add(-time.Minute),
		UpdatedAt:         time.Now().Add(-time.Minute),
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO mpesa_transactions")).
		WithArgs(txn.ID, txn.TransactionID, txn.OrderID, txn.MerchantRequestID, txn.CheckoutRequestID,
			txn.PhoneNumber, txn.Amount, txn.Status, txn.IsComplete, txn.InitRequestData,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.CreateTransaction(context.Background(), txn)
	assert.NoError(t, err)
	assert.Equal(t, txn.TransactionID, created.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionByCheckoutRequestID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM mpesa_transactions WHERE checkout_request_id")).
		WithArgs("ws_CO_unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetTransactionByCheckoutRequestID(context.Background(), "ws_CO_unknown")
	assert.ErrorIs(t, err, payment.ErrTransactionNotFound)
}

func TestGetTransactionByRef_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()

	mock.ExpectQuery(regexp.QuoteMeta("FROM mpesa_transactions WHERE transaction_id")).
		WithArgs(txn.TransactionID).
		WillReturnRows(transactionRows(txn))

	got, err := repo.GetTransactionByRef(context.Background(), txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, txn.CheckoutRequestID, got.CheckoutRequestID)
	assert.True(t, got.Amount.Equal(txn.Amount))
}

func TestCompleteTransaction_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()
	receivedAt := time.Now()
	txnDate := time.Now().Add(-time.Second)

	completion := &models.TransactionCompletion{
		Status:             models.TransactionStatusSuccess,
		ResultCode:         0,
		ResultDescription:  "The service request is processed successfully.",
		MpesaReceiptNumber: "ABC123XYZ",
		TransactionDate:    &txnDate,
		ReceivedAt:         receivedAt,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(txn.CheckoutRequestID).
		WillReturnRows(transactionRows(txn))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE mpesa_transactions SET")).
		WithArgs(models.TransactionStatusSuccess, 0, completion.ResultDescription,
			"ABC123XYZ", &txnDate, []byte(nil), receivedAt, sqlmock.AnyArg(), txn.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET")).
		WithArgs(models.PaymentStatusPaid, models.OrderStatusConfirmed, "ABC123XYZ",
			&txnDate, sqlmock.AnyArg(), txn.OrderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.CompleteTransaction(context.Background(), txn.CheckoutRequestID, completion)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSuccess, updated.Status)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "ABC123XYZ", updated.MpesaReceiptNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteTransaction_AlreadyComplete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()
	txn.Status = models.TransactionStatusSuccess
	txn.IsComplete = true

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(txn.CheckoutRequestID).
		WillReturnRows(transactionRows(txn))
	mock.ExpectRollback()

	got, err := repo.CompleteTransaction(context.Background(), txn.CheckoutRequestID, &models.TransactionCompletion{
		Status: models.TransactionStatusFailed,
	})
	assert.ErrorIs(t, err, payment.ErrTransactionAlreadyComplete)
	require.NotNil(t, got)
	assert.Equal(t, models.TransactionStatusSuccess, got.Status)
}

func TestCompleteTransaction_FailureUpdatesOrderPaymentOnly(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()
	receivedAt := time.Now()

	completion := &models.TransactionCompletion{
		Status:            models.TransactionStatusFailed,
		ResultCode:        1032,
		ResultDescription: "Request cancelled by user",
		ReceivedAt:        receivedAt,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(txn.CheckoutRequestID).
		WillReturnRows(transactionRows(txn))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE mpesa_transactions SET")).
		WithArgs(models.TransactionStatusFailed, 1032, completion.ResultDescription,
			"", nil, []byte(nil), receivedAt, sqlmock.AnyArg(), txn.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET")).
		WithArgs(models.PaymentStatusFailed, sqlmock.AnyArg(), txn.OrderID, models.PaymentStatusPaid).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.CompleteTransaction(context.Background(), txn.CheckoutRequestID, completion)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, updated.Status)
	assert.True(t, updated.IsComplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteTransaction_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("ws_CO_unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.CompleteTransaction(context.Background(), "ws_CO_unknown", &models.TransactionCompletion{
		Status: models.TransactionStatusFailed,
	})
	assert.ErrorIs(t, err, payment.ErrTransactionNotFound)
}

func TestListStalePending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	txn := pendingTransaction()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND is_complete = false AND created_at < $2")).
		WithArgs(models.TransactionStatusPending, sqlmock.AnyArg(), 50).
		WillReturnRows(transactionRows(txn))

	txns, err := repo.ListStalePending(context.Background(), 5*time.Minute, 50)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.CheckoutRequestID, txns[0].CheckoutRequestID)
}

func TestGetOrderForPayment_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db)

	orderID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetOrderForPayment(context.Background(), orderID)
	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
	"github.com/waithaka/dukasoko/services/payment/mocks"
)

// fakeLocks is an in-memory LockClient
type fakeLocks struct {
	denied   bool
	setNXErr error
	acquired []string
	released []string
}

func (f *fakeLocks) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if f.setNXErr != nil {
		return false, f.setNXErr
	}
	if f.denied {
		return false, nil
	}
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLocks) Delete(ctx context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

func testConfig() *models.Config {
	return &models.Config{
		Mpesa: models.MpesaConfig{
			BusinessShortCode: "174379",
			MinAmount:         10.0,
			MaxAmount:         150000.0,
		},
	}
}

func payableOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		OrderNumber:   "ORD20250831000001",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   decimal.NewFromInt(1500),
	}
}

func TestInitiatePayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)
	locks := &fakeLocks{}

	userID := uuid.New()
	order := payableOrder(userID)

	uc, err := NewPaymentUC(testConfig(), repo, gw, locks)
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)
	gw.EXPECT().STKPush(gomock.Any(), "254712345678", order.TotalAmount, order.OrderNumber, gomock.Any()).
		Return(&models.STKPushResponse{
			MerchantRequestID: "29115-34620561-1",
			CheckoutRequestID: "ws_CO_191220191020363925",
			ResponseCode:      "0",
			CustomerMessage:   "Success. Request accepted for processing",
		}, nil)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
			assert.Equal(t, order.ID, txn.OrderID)
			assert.Equal(t, "254712345678", txn.PhoneNumber)
			assert.Equal(t, "ws_CO_191220191020363925", txn.CheckoutRequestID)
			assert.Equal(t, models.TransactionStatusPending, txn.Status)
			assert.False(t, txn.IsComplete)
			assert.NotEmpty(t, txn.TransactionID)
			return txn, nil
		})

	resp, err := uc.InitiatePayment(context.Background(), userID, &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, "Success. Request accepted for processing", resp.CustomerMessage)
	assert.Len(t, locks.acquired, 1)
	assert.Empty(t, locks.released)
}

func TestInitiatePayment_InvalidPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	_, err = uc.InitiatePayment(context.Background(), uuid.New(), &models.InitiatePaymentRequest{
		OrderID:     uuid.New().String(),
		PhoneNumber: "12345",
	})
	require.Error(t, err)

	var valErr *payment.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "phone_number", valErr.Field)
}

func TestInitiatePayment_OrderBelongsToAnotherUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	order := payableOrder(uuid.New())

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)

	_, err = uc.InitiatePayment(context.Background(), uuid.New(), &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
}

func TestInitiatePayment_OrderAlreadyPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	userID := uuid.New()
	order := payableOrder(userID)
	order.PaymentStatus = models.PaymentStatusPaid

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)

	_, err = uc.InitiatePayment(context.Background(), userID, &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	assert.ErrorIs(t, err, payment.ErrOrderAlreadyPaid)
}

func TestInitiatePayment_AmountOutOfBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	userID := uuid.New()
	order := payableOrder(userID)
	order.TotalAmount = decimal.NewFromInt(5)

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)

	_, err = uc.InitiatePayment(context.Background(), userID, &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	require.Error(t, err)

	var valErr *payment.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "amount", valErr.Field)
}

func TestInitiatePayment_LockContention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	userID := uuid.New()
	order := payableOrder(userID)

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{denied: true})
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)

	// No STK push and no transaction row when the lock is held elsewhere
	_, err = uc.InitiatePayment(context.Background(), userID, &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	assert.ErrorIs(t, err, payment.ErrPaymentInProgress)
}

func TestInitiatePayment_GatewayRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)
	locks := &fakeLocks{}

	userID := uuid.New()
	order := payableOrder(userID)

	uc, err := NewPaymentUC(testConfig(), repo, gw, locks)
	require.NoError(t, err)

	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil)
	gw.EXPECT().STKPush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &payment.GatewayError{Code: "1", Message: "Insufficient balance on the utility account"})

	// The gateway rejected the push, so no row is written and the lock
	// is released for an immediate retry
	_, err = uc.InitiatePayment(context.Background(), userID, &models.InitiatePaymentRequest{
		OrderID:     order.ID.String(),
		PhoneNumber: "0712345678",
	})
	require.Error(t, err)

	var gwErr *payment.GatewayError
	assert.True(t, errors.As(err, &gwErr))
	assert.Len(t, locks.released, 1)
}

func TestGetTransaction_OwnershipEnforced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	owner := uuid.New()
	order := payableOrder(owner)
	txn := &models.Transaction{
		ID:            uuid.New(),
		TransactionID: "MPESAABCDE12345",
		OrderID:       order.ID,
	}

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetTransactionByRef(gomock.Any(), txn.TransactionID).Return(txn, nil).Times(2)
	repo.EXPECT().GetOrderForPayment(gomock.Any(), order.ID).Return(order, nil).Times(2)

	got, err := uc.GetTransaction(context.Background(), owner, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, txn.TransactionID, got.TransactionID)

	_, err = uc.GetTransaction(context.Background(), uuid.New(), txn.TransactionID)
	assert.ErrorIs(t, err, payment.ErrTransactionNotFound)
}

func TestCancelTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	txn := &models.Transaction{
		ID:                uuid.New(),
		TransactionID:     "MPESAABCDE12345",
		OrderID:           uuid.New(),
		CheckoutRequestID: "ws_CO_01",
		Status:            models.TransactionStatusPending,
	}

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetTransactionByRef(gomock.Any(), txn.TransactionID).Return(txn, nil)
	repo.EXPECT().CompleteTransaction(gomock.Any(), "ws_CO_01", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, completion *models.TransactionCompletion) (*models.Transaction, error) {
			assert.Equal(t, models.TransactionStatusCancelled, completion.Status)
			cancelled := *txn
			cancelled.Status = models.TransactionStatusCancelled
			cancelled.IsComplete = true
			return &cancelled, nil
		})

	updated, err := uc.CancelTransaction(context.Background(), txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCancelled, updated.Status)
}

func TestCancelTransaction_AlreadyComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPaymentRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)

	txn := &models.Transaction{
		TransactionID: "MPESAABCDE12345",
		Status:        models.TransactionStatusSuccess,
		IsComplete:    true,
	}

	uc, err := NewPaymentUC(testConfig(), repo, gw, &fakeLocks{})
	require.NoError(t, err)

	repo.EXPECT().GetTransactionByRef(gomock.Any(), txn.TransactionID).Return(txn, nil)

	_, err = uc.CancelTransaction(context.Background(), txn.TransactionID)
	assert.ErrorIs(t, err, payment.ErrTransactionAlreadyComplete)
}

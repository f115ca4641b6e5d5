package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
	"github.com/waithaka/dukasoko/services/payment/mocks"
)

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestInitiatePayment_Handler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	userID := uuid.New()
	orderID := uuid.New()

	uc.EXPECT().InitiatePayment(gomock.Any(), userID, gomock.Any()).
		Return(&models.InitiatePaymentResponse{
			TransactionID:   "MPESAABCDE12345",
			CustomerMessage: "Success. Request accepted for processing",
		}, nil)

	c, rec := newContext(http.MethodPost, "/api/payments/initiate",
		`{"order_id":"`+orderID.String()+`","phone_number":"0712345678"}`)
	c.Set("user_id", userID)

	require.NoError(t, h.InitiatePayment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "MPESAABCDE12345")
}

func TestInitiatePayment_Handler_NoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	c, rec := newContext(http.MethodPost, "/api/payments/initiate", `{}`)

	require.NoError(t, h.InitiatePayment(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitiatePayment_Handler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation error", payment.NewValidationError("phone_number", "invalid"), http.StatusBadRequest},
		{"order not found", payment.ErrOrderNotFound, http.StatusNotFound},
		{"already paid", payment.ErrOrderAlreadyPaid, http.StatusConflict},
		{"lock held", payment.ErrPaymentInProgress, http.StatusConflict},
		{"gateway rejection", &payment.GatewayError{Code: "1", Message: "rejected"}, http.StatusBadGateway},
		{"transport failure", &payment.TransportError{Op: "push", Err: assert.AnError}, http.StatusServiceUnavailable},
		{"auth failure", &payment.AuthError{Message: "bad credentials"}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := mocks.NewMockPaymentUC(ctrl)
			h := NewPaymentHandler(uc)

			uc.EXPECT().InitiatePayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, rec := newContext(http.MethodPost, "/api/payments/initiate",
				`{"order_id":"`+uuid.New().String()+`","phone_number":"0712345678"}`)
			c.Set("user_id", uuid.New())

			require.NoError(t, h.InitiatePayment(c))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestMpesaCallback_Handler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	payload := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_01","ResultCode":0}}}`

	uc.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, delivery *models.WebhookDelivery) (*models.CallbackAck, int) {
			assert.JSONEq(t, payload, string(delivery.Payload))
			assert.NotEmpty(t, delivery.IPAddress)
			return &models.CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}, http.StatusOK
		})

	c, rec := newContext(http.MethodPost, "/api/payments/mpesa/callback", payload)

	require.NoError(t, h.MpesaCallback(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var ack models.CallbackAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, 0, ack.ResultCode)
	assert.Equal(t, "Accepted", ack.ResultDesc)
}

func TestMpesaCallback_Handler_RejectedStillWellFormed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	uc.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
		Return(&models.CallbackAck{ResultCode: 1, ResultDesc: "Rejected"}, http.StatusBadRequest)

	c, rec := newContext(http.MethodPost, "/api/payments/mpesa/callback", `not json at all`)

	require.NoError(t, h.MpesaCallback(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var ack models.CallbackAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, 1, ack.ResultCode)
}

func TestGetTransaction_Handler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	userID := uuid.New()
	uc.EXPECT().GetTransaction(gomock.Any(), userID, "MPESAUNKNOWN").
		Return(nil, payment.ErrTransactionNotFound)

	c, rec := newContext(http.MethodGet, "/api/payments/transactions/MPESAUNKNOWN", "")
	c.Set("user_id", userID)
	c.SetParamNames("ref")
	c.SetParamValues("MPESAUNKNOWN")

	require.NoError(t, h.GetTransaction(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelTransaction_Handler_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockPaymentUC(ctrl)
	h := NewPaymentHandler(uc)

	uc.EXPECT().CancelTransaction(gomock.Any(), "MPESAABCDE12345").
		Return(nil, payment.ErrTransactionAlreadyComplete)

	c, rec := newContext(http.MethodPost, "/internal/payments/MPESAABCDE12345/cancel", "")
	c.SetParamNames("ref")
	c.SetParamValues("MPESAABCDE12345")

	require.NoError(t, h.CancelTransaction(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

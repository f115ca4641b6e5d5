package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	nrpkg "github.com/waithaka/dukasoko/internal/pkg/newrelic"
	"github.com/waithaka/dukasoko/internal/utils"
	"github.com/waithaka/dukasoko/services/payment"
)

// callbackBodyLimit bounds how much of an inbound webhook we will read
const callbackBodyLimit = 1 << 20 // 1 MiB

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// InitiatePayment handles the storefront payment initiation request
func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payment.Initiate")

	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	resp, err := h.paymentUC.InitiatePayment(c.Request().Context(), userID, &req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return h.initiationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment initiated. Check your phone to complete the payment.", resp)
}

// initiationErrorResponse maps the payment error taxonomy onto HTTP
// statuses
func (h *PaymentHandler) initiationErrorResponse(c echo.Context, err error) error {
	var valErr *payment.ValidationError
	var gwErr *payment.GatewayError
	var transportErr *payment.TransportError
	var authErr *payment.AuthError

	switch {
	case errors.As(err, &valErr):
		return utils.BadRequestResponse(c, valErr.Error())
	case errors.Is(err, payment.ErrOrderNotFound):
		return utils.NotFoundResponse(c, "Order not found")
	case errors.Is(err, payment.ErrOrderAlreadyPaid):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Order has already been paid")
	case errors.Is(err, payment.ErrPaymentInProgress):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "A payment for this order is already in progress")
	case errors.As(err, &gwErr):
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Payment could not be initiated: "+gwErr.Message)
	case errors.As(err, &transportErr):
		// Outcome unknown; the client must not assume failure
		return utils.ServiceUnavailableResponse(c, "Payment gateway is unreachable, please try again")
	case errors.As(err, &authErr):
		logger.Error("Gateway credentials rejected", logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "Payment service is temporarily unavailable")
	default:
		return utils.InternalServerErrorResponse(c, "Failed to initiate payment")
	}
}

// MpesaCallback receives the gateway's asynchronous result for an STK
// push. The response status is decided by the reconciler; the body is
// always a well-formed acknowledgement.
func (h *PaymentHandler) MpesaCallback(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payment.MpesaCallback")

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, callbackBodyLimit))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.CallbackAck{ResultCode: 1, ResultDesc: "Rejected"})
	}

	headers, _ := json.Marshal(flattenHeaders(c.Request().Header))

	ack, status := h.paymentUC.HandleCallback(c.Request().Context(), &models.WebhookDelivery{
		Payload:   body,
		Headers:   headers,
		IPAddress: c.RealIP(),
	})

	return c.JSON(status, ack)
}

func flattenHeaders(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for name := range h {
		flat[name] = h.Get(name)
	}
	return flat
}

// GetTransaction returns one of the caller's transactions
func (h *PaymentHandler) GetTransaction(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	ref := c.Param("ref")
	if ref == "" {
		return utils.BadRequestResponse(c, "Transaction reference is required")
	}

	txn, err := h.paymentUC.GetTransaction(c.Request().Context(), userID, ref)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			return utils.NotFoundResponse(c, "Transaction not found")
		}
		return utils.InternalServerErrorResponse(c, "Failed to load transaction")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", txn)
}

// ListTransactions returns the caller's transactions, newest first
func (h *PaymentHandler) ListTransactions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	txns, err := h.paymentUC.ListTransactions(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list transactions")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", txns)
}

// RequeryTransaction asks the gateway for the current state of a
// transaction and reconciles it. Operator endpoint.
func (h *PaymentHandler) RequeryTransaction(c echo.Context) error {
	ref := c.Param("ref")
	if ref == "" {
		return utils.BadRequestResponse(c, "Transaction reference is required")
	}

	txn, err := h.paymentUC.RequeryTransaction(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			return utils.NotFoundResponse(c, "Transaction not found")
		}
		logger.Error("Requery failed", logger.String("ref", ref), logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to requery transaction")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", txn)
}

// CancelTransaction force-cancels a stuck pending transaction.
// Operator endpoint.
func (h *PaymentHandler) CancelTransaction(c echo.Context) error {
	ref := c.Param("ref")
	if ref == "" {
		return utils.BadRequestResponse(c, "Transaction reference is required")
	}

	txn, err := h.paymentUC.CancelTransaction(c.Request().Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrTransactionNotFound):
			return utils.NotFoundResponse(c, "Transaction not found")
		case errors.Is(err, payment.ErrTransactionAlreadyComplete):
			return utils.ErrorResponseHandler(c, http.StatusConflict, "Transaction is already complete")
		default:
			return utils.InternalServerErrorResponse(c, "Failed to cancel transaction")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transaction cancelled", txn)
}

// GatewayConfig exposes non-secret gateway settings. Operator endpoint.
func (h *PaymentHandler) GatewayConfig(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "", h.paymentUC.GatewayConfig())
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	raw := c.Get("user_id")
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	default:
		return uuid.Nil, errors.New("no authenticated user in context")
	}
}

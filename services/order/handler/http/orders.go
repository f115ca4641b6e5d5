package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	nrpkg "github.com/waithaka/dukasoko/internal/pkg/newrelic"
	"github.com/waithaka/dukasoko/internal/utils"
	"github.com/waithaka/dukasoko/services/order"
)

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderUC order.OrderUC
}

// NewOrderHandler creates a new order HTTP handler
func NewOrderHandler(orderUC order.OrderUC) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
	}
}

// CreateOrder handles the storefront order creation request
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Order.Create")

	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	created, err := h.orderUC.CreateOrder(c.Request().Context(), userID, &req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return h.creationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Order created", created)
}

func (h *OrderHandler) creationErrorResponse(c echo.Context, err error) error {
	var valErr *order.ValidationError

	switch {
	case errors.As(err, &valErr):
		return utils.BadRequestResponse(c, valErr.Error())
	case errors.Is(err, order.ErrProductNotFound):
		return utils.BadRequestResponse(c, "One or more products are unavailable")
	case errors.Is(err, order.ErrInsufficientStock):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "One or more products are out of stock")
	default:
		return utils.InternalServerErrorResponse(c, "Failed to create order")
	}
}

// GetOrder returns one of the customer's own orders
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid order ID")
	}

	o, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		return utils.NotFoundResponse(c, "Order not found")
	}
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get order")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", o)
}

// ListOrders returns a page of the customer's orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list orders")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", orders)
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

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/waithaka/dukasoko/internal/pkg/middleware"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/order"
	httpHandler "github.com/waithaka/dukasoko/services/order/handler/http"
)

// Handler combines all handlers for the order service
type Handler struct {
	orderHTTP *httpHandler.OrderHandler
	cfg       *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	orderUC order.OrderUC,
	cfg *models.Config,
) *Handler {
	return &Handler{
		orderHTTP: httpHandler.NewOrderHandler(orderUC),
		cfg:       cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	orders := e.Group("/api/orders", middleware.JWTAuthMiddleware(h.cfg.JWT))
	orders.POST("", h.orderHTTP.CreateOrder)
	orders.GET("", h.orderHTTP.ListOrders)
	orders.GET("/:id", h.orderHTTP.GetOrder)
}

package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/waithaka/dukasoko/internal/pkg/database"
	"github.com/waithaka/dukasoko/internal/pkg/middleware"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/payment"
	httpHandler "github.com/waithaka/dukasoko/services/payment/handler/http"
)

// Handler combines all handlers for the payment service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	paymentUC payment.PaymentUC,
	cfg *models.Config,
) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, apiKey *middleware.APIKeyMiddleware, redisClient *database.RedisClient) {
	api := e.Group("/api")

	// The callback endpoint is public; the gateway does not authenticate
	api.POST("/payments/mpesa/callback", h.paymentHTTP.MpesaCallback)

	// Customer endpoints
	payments := api.Group("/payments", middleware.JWTAuthMiddleware(h.cfg.JWT))
	payments.POST("/initiate", h.paymentHTTP.InitiatePayment,
		middleware.IPRateLimiter(10, time.Minute, redisClient.GetClient()))
	payments.GET("/transactions", h.paymentHTTP.ListTransactions)
	payments.GET("/transactions/:ref", h.paymentHTTP.GetTransaction)

	// Operator endpoints (API key required)
	internal := e.Group("/internal/payments", apiKey.APIKeyHandler("ops", "admin"))
	internal.GET("/config", h.paymentHTTP.GatewayConfig)
	internal.POST("/:ref/requery", h.paymentHTTP.RequeryTransaction)
	internal.POST("/:ref/cancel", h.paymentHTTP.CancelTransaction, apiKey.APIKeyHandler("admin"))
}

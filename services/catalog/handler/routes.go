package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/waithaka/dukasoko/internal/pkg/middleware"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/catalog"
	httpHandler "github.com/waithaka/dukasoko/services/catalog/handler/http"
)

// Handler combines all handlers for the catalog service
type Handler struct {
	catalogHTTP *httpHandler.CatalogHandler
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	catalogUC catalog.CatalogUC,
	cfg *models.Config,
) *Handler {
	return &Handler{
		catalogHTTP: httpHandler.NewCatalogHandler(catalogUC),
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Product browsing is public
	products := e.Group("/api/products")
	products.GET("", h.catalogHTTP.ListProducts)
	products.GET("/:id", h.catalogHTTP.GetProduct)
	products.GET("/:id/reviews", h.catalogHTTP.ListReviews)

	// Reviews and wishlist require an authenticated customer
	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)
	products.POST("/:id/reviews", h.catalogHTTP.CreateReview, auth)
	products.POST("/:id/wishlist", h.catalogHTTP.ToggleWishlist, auth)

	e.GET("/api/wishlist", h.catalogHTTP.ListWishlist, auth)
}

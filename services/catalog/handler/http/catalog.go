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
	"github.com/waithaka/dukasoko/services/catalog"
)

// CatalogHandler handles HTTP requests for catalog operations
type CatalogHandler struct {
	catalogUC catalog.CatalogUC
}

// NewCatalogHandler creates a new catalog HTTP handler
func NewCatalogHandler(catalogUC catalog.CatalogUC) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
	}
}

// ListProducts returns a filtered page of products
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	filter := &models.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   offset,
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list products")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", products)
}

// GetProduct returns a single product
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return utils.NotFoundResponse(c, "Product not found")
	}
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get product")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", product)
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview records the customer's review of a product
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Catalog.CreateReview")

	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid product ID")
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	review, err := h.catalogUC.CreateReview(c.Request().Context(), userID, productID, req.Rating, req.Comment)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		var valErr *catalog.ValidationError
		switch {
		case errors.As(err, &valErr):
			return utils.BadRequestResponse(c, valErr.Error())
		case errors.Is(err, catalog.ErrProductNotFound):
			return utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, catalog.ErrReviewExists):
			return utils.ErrorResponseHandler(c, http.StatusConflict, "You have already reviewed this product")
		default:
			return utils.InternalServerErrorResponse(c, "Failed to create review")
		}
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Review created", review)
}

// ListReviews returns a page of product reviews
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid product ID")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	reviews, err := h.catalogUC.ListReviews(c.Request().Context(), productID, limit, offset)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list reviews")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", reviews)
}

// ToggleWishlist adds or removes a product from the customer's wishlist
func (h *CatalogHandler) ToggleWishlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid product ID")
	}

	added, err := h.catalogUC.ToggleWishlist(c.Request().Context(), userID, productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return utils.NotFoundResponse(c, "Product not found")
	}
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to update wishlist")
	}

	message := "Product removed from wishlist"
	if added {
		message = "Product added to wishlist"
	}
	return utils.SuccessResponse(c, http.StatusOK, message, map[string]bool{"saved": added})
}

// ListWishlist returns the customer's saved products
func (h *CatalogHandler) ListWishlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	products, err := h.catalogUC.ListWishlist(c.Request().Context(), userID)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list wishlist")
	}

	return utils.SuccessResponse(c, http.StatusOK, "", products)
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

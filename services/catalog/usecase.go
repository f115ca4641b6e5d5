package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// CatalogUC defines the interface for catalog business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/waithaka/dukasoko/services/catalog CatalogUC
type CatalogUC interface {
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)

	CreateReview(ctx context.Context, userID uuid.UUID, productID uuid.UUID, rating int, comment string) (*models.Review, error)
	ListReviews(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error)

	// ToggleWishlist adds the product to the user's wishlist, or removes
	// it when already present. Returns true when the product was added.
	ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]*models.Product, error)
}

package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

// CatalogRepo defines the interface for catalog data access operations
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/waithaka/dukasoko/services/catalog CatalogRepo
type CatalogRepo interface {
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	GetProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)

	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error)

	AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListWishlistByUser(ctx context.Context, userID uuid.UUID) ([]*models.Product, error)
	IsInWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waithaka/dukasoko/internal/pkg/constants"
	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/catalog"
)

const (
	productCacheTTL = 5 * time.Minute
	listCacheTTL    = time.Minute

	defaultListLimit = 20
	maxListLimit     = 100

	minRating = 1
	maxRating = 5

	maxCommentLength = 2000
)

// CacheClient is the subset of the Redis client used for catalog
// read-through caching. Any Get error is treated as a cache miss.
type CacheClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// catalogUC implements the catalog.CatalogUC interface
type catalogUC struct {
	cfg         *models.Config
	catalogRepo catalog.CatalogRepo
	redisClient CacheClient
}

// NewCatalogUC creates a new catalog use case
func NewCatalogUC(
	cfg *models.Config,
	catalogRepo catalog.CatalogRepo,
	redisClient CacheClient,
) (catalog.CatalogUC, error) {
	return &catalogUC{
		cfg:         cfg,
		catalogRepo: catalogRepo,
		redisClient: redisClient,
	}, nil
}

// ListProducts serves a filtered product page through the Redis cache
func (uc *catalogUC) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	if filter == nil {
		filter = &models.ProductFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	cacheKey := fmt.Sprintf(constants.KeyProductList, listFilterKey(filter))
	if cached, err := uc.redisClient.Get(ctx, cacheKey); err == nil {
		var products []*models.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}

	products, err := uc.catalogRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, cacheKey, products, listCacheTTL)
	return products, nil
}

// GetProduct serves a single product through the Redis cache
func (uc *catalogUC) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	cacheKey := fmt.Sprintf(constants.KeyProductCache, productID)
	if cached, err := uc.redisClient.Get(ctx, cacheKey); err == nil {
		var product models.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
	}

	product, err := uc.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, cacheKey, product, productCacheTTL)
	return product, nil
}

// CreateReview records a customer's product review
func (uc *catalogUC) CreateReview(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < minRating || rating > maxRating {
		return nil, catalog.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if len(comment) > maxCommentLength {
		return nil, catalog.NewValidationError("comment", "comment is too long")
	}

	// The product must exist and be active
	if _, err := uc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	return uc.catalogRepo.CreateReview(ctx, &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	})
}

// ListReviews retrieves a page of product reviews
func (uc *catalogUC) ListReviews(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.catalogRepo.ListReviewsByProduct(ctx, productID, limit, offset)
}

// ToggleWishlist adds or removes the product from the user's wishlist
func (uc *catalogUC) ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	saved, err := uc.catalogRepo.IsInWishlist(ctx, userID, productID)
	if err != nil {
		return false, err
	}

	if saved {
		if _, err := uc.catalogRepo.RemoveWishlistItem(ctx, userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := uc.GetProduct(ctx, productID); err != nil {
		return false, err
	}
	if err := uc.catalogRepo.AddWishlistItem(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

// ListWishlist retrieves the products on the user's wishlist
func (uc *catalogUC) ListWishlist(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {
	return uc.catalogRepo.ListWishlistByUser(ctx, userID)
}

// cacheSet writes a value to the cache. Failures are logged and served
// from the database on the next request.
func (uc *catalogUC) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("Failed to cache catalog entry",
			logger.String("key", key),
			logger.Err(err))
	}
}

func listFilterKey(filter *models.ProductFilter) string {
	return fmt.Sprintf("%s:%s:%d:%d", filter.Category, filter.Search, filter.Limit, filter.Offset)
}

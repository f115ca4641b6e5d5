package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/constants"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/catalog"
	"github.com/waithaka/dukasoko/services/catalog/mocks"
)

// fakeCache is an in-memory CacheClient
type fakeCache struct {
	entries map[string]string
	getErr  error
	sets    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.entries[key]
	if !ok {
		return "", fmt.Errorf("cache miss")
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, _ := value.([]byte)
	f.entries[key] = string(data)
	f.sets = append(f.sets, key)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func activeProduct() *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     "soap",
		SKU:      "SOAP-001",
		Price:    decimal.NewFromInt(150),
		Stock:    20,
		IsActive: true,
		Category: "home",
	}
}

func newCatalogUC(t *testing.T, ctrl *gomock.Controller, cache CacheClient) (catalog.CatalogUC, *mocks.MockCatalogRepo) {
	t.Helper()
	repo := mocks.NewMockCatalogRepo(ctrl)
	uc, err := NewCatalogUC(&models.Config{}, repo, cache)
	require.NoError(t, err)
	return uc, repo
}

func TestGetProduct_CacheMissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := newFakeCache()
	uc, repo := newCatalogUC(t, ctrl, cache)

	product := activeProduct()

	// The repository is consulted exactly once; the second read is
	// served from the cache
	repo.EXPECT().GetProductByID(gomock.Any(), product.ID).Return(product, nil).Times(1)

	got, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)

	got, err = uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.True(t, got.Price.Equal(product.Price))

	assert.Contains(t, cache.sets, fmt.Sprintf(constants.KeyProductCache, product.ID))
}

func TestGetProduct_NotFoundIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := newFakeCache()
	uc, repo := newCatalogUC(t, ctrl, cache)

	productID := uuid.New()
	repo.EXPECT().GetProductByID(gomock.Any(), productID).
		Return(nil, catalog.ErrProductNotFound).Times(2)

	_, err := uc.GetProduct(context.Background(), productID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), productID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, cache.sets)
}

func TestGetProduct_CorruptCacheEntryFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := newFakeCache()
	uc, repo := newCatalogUC(t, ctrl, cache)

	product := activeProduct()
	cache.entries[fmt.Sprintf(constants.KeyProductCache, product.ID)] = "{not json"

	repo.EXPECT().GetProductByID(gomock.Any(), product.ID).Return(product, nil)

	got, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
}

func TestListProducts_CachedPerFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := newFakeCache()
	uc, repo := newCatalogUC(t, ctrl, cache)

	home := []*models.Product{activeProduct()}
	kitchen := []*models.Product{activeProduct(), activeProduct()}

	repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
			assert.Equal(t, defaultListLimit, filter.Limit)
			if filter.Category == "home" {
				return home, nil
			}
			return kitchen, nil
		}).Times(2)

	got, err := uc.ListProducts(context.Background(), &models.ProductFilter{Category: "home"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.ListProducts(context.Background(), &models.ProductFilter{Category: "kitchen"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Both pages now come from the cache
	got, err = uc.ListProducts(context.Background(), &models.ProductFilter{Category: "home"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.ListProducts(context.Background(), &models.ProductFilter{Category: "kitchen"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListProducts_CacheUnavailableServesFromDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := newFakeCache()
	cache.getErr = fmt.Errorf("redis: connection refused")
	uc, repo := newCatalogUC(t, ctrl, cache)

	repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).
		Return([]*models.Product{activeProduct()}, nil)

	got, err := uc.ListProducts(context.Background(), &models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCreateReview_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo := newCatalogUC(t, ctrl, newFakeCache())

	userID := uuid.New()
	product := activeProduct()

	repo.EXPECT().GetProductByID(gomock.Any(), product.ID).Return(product, nil)
	repo.EXPECT().CreateReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, review *models.Review) (*models.Review, error) {
			assert.Equal(t, userID, review.UserID)
			assert.Equal(t, product.ID, review.ProductID)
			assert.Equal(t, 4, review.Rating)
			review.ID = uuid.New()
			return review, nil
		})

	review, err := uc.CreateReview(context.Background(), userID, product.ID, 4, "Good value")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, review.ID)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _ := newCatalogUC(t, ctrl, newFakeCache())

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), uuid.New(), uuid.New(), rating, "")
		var valErr *catalog.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "rating", valErr.Field)
	}
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo := newCatalogUC(t, ctrl, newFakeCache())

	productID := uuid.New()
	repo.EXPECT().GetProductByID(gomock.Any(), productID).Return(nil, catalog.ErrProductNotFound)

	_, err := uc.CreateReview(context.Background(), uuid.New(), productID, 5, "")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestToggleWishlist_AddsWhenAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo := newCatalogUC(t, ctrl, newFakeCache())

	userID := uuid.New()
	product := activeProduct()

	repo.EXPECT().IsInWishlist(gomock.Any(), userID, product.ID).Return(false, nil)
	repo.EXPECT().GetProductByID(gomock.Any(), product.ID).Return(product, nil)
	repo.EXPECT().AddWishlistItem(gomock.Any(), userID, product.ID).Return(nil)

	added, err := uc.ToggleWishlist(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestToggleWishlist_RemovesWhenPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo := newCatalogUC(t, ctrl, newFakeCache())

	userID := uuid.New()
	productID := uuid.New()

	repo.EXPECT().IsInWishlist(gomock.Any(), userID, productID).Return(true, nil)
	repo.EXPECT().RemoveWishlistItem(gomock.Any(), userID, productID).Return(true, nil)

	added, err := uc.ToggleWishlist(context.Background(), userID, productID)
	require.NoError(t, err)
	assert.False(t, added)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/catalog"
)

type CatalogRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

func NewCatalogRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *CatalogRepo {
	return &CatalogRepo{
		cfg: cfg,
		db:  db,
	}
}

const productColumns = `
	id, name, slug, sku, description, price, stock, is_active, category,
	created_at, updated_at
`

// ListProducts retrieves a filtered page of active products
func (r *CatalogRepo) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE is_active = true`, productColumns)
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	products := []*models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProductByID retrieves an active product
func (r *CatalogRepo) GetProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND is_active = true`, productColumns)

	var p models.Product
	err := r.db.GetContext(ctx, &p, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateReview inserts a product review. One review per user per
// product, enforced by a unique constraint on (product_id, user_id).
func (r *CatalogRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()

	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_id) DO NOTHING
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if affected == 0 {
		return nil, catalog.ErrReviewExists
	}

	return review, nil
}

// ListReviewsByProduct retrieves a page of product reviews, newest first
func (r *CatalogRepo) ListReviewsByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	reviews := []*models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, productID, limit, offset); err != nil {
		return nil, err
	}

	return reviews, nil
}

// AddWishlistItem saves a product to the user's wishlist. Adding an
// already-saved product is a no-op.
func (r *CatalogRepo) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, productID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// RemoveWishlistItem removes a product from the user's wishlist.
// Returns true when an item was removed.
func (r *CatalogRepo) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListWishlistByUser retrieves the products on the user's wishlist
func (r *CatalogRepo) ListWishlistByUser(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.sku, p.description, p.price, p.stock,
			p.is_active, p.category, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1 AND p.is_active = true
		ORDER BY w.created_at DESC
	`

	products := []*models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, userID); err != nil {
		return nil, err
	}

	return products, nil
}

// IsInWishlist reports whether the product is on the user's wishlist
func (r *CatalogRepo) IsInWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, productID); err != nil {
		return false, err
	}
	return exists, nil
}

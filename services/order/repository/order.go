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
	"github.com/waithaka/dukasoko/services/order"
)

type OrderRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

func NewOrderRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *OrderRepo {
	return &OrderRepo{
		cfg: cfg,
		db:  db,
	}
}

const orderColumns = `
	id, user_id, order_number, status, payment_status, payment_method,
	subtotal, shipping_cost, total_amount,
	shipping_address, customer_email, customer_phone, transaction_id,
	created_at, updated_at, paid_at
`

// CreateOrder inserts the order with its line items and decrements
// product stock in a single transaction. Stock is checked again at
// decrement time so two concurrent orders cannot oversell a product.
func (r *OrderRepo) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertOrder := `
		INSERT INTO orders (
			id, user_id, order_number, status, payment_status, payment_method,
			subtotal, shipping_cost, total_amount,
			shipping_address, customer_email, customer_phone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.ExecContext(
		ctx,
		insertOrder,
		o.ID,
		o.UserID,
		o.OrderNumber,
		o.Status,
		o.PaymentStatus,
		o.PaymentMethod,
		o.Subtotal,
		o.ShippingCost,
		o.TotalAmount,
		o.ShippingAddress,
		o.CustomerEmail,
		o.CustomerPhone,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (
			id, order_id, product_id, product_name, product_sku, quantity, price
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	decrementStock := `
		UPDATE products
		SET stock = stock - $1, updated_at = $2
		WHERE id = $3 AND stock >= $1
	`

	for i := range o.Items {
		item := &o.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = o.ID

		_, err = tx.ExecContext(
			ctx,
			insertItem,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.ProductSKU,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		result, err := tx.ExecContext(ctx, decrementStock, item.Quantity, now, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		if affected == 0 {
			return nil, order.ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return o, nil
}

// GetOrderByID retrieves an order with its line items
func (r *OrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	var o models.Order
	err := r.db.GetContext(ctx, &o, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	itemsQuery := `
		SELECT id, order_id, product_id, product_name, product_sku, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`
	if err := r.db.SelectContext(ctx, &o.Items, itemsQuery, orderID); err != nil {
		return nil, err
	}

	return &o, nil
}

// ListOrdersByUser retrieves a page of a customer's orders, newest first
func (r *OrderRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, orderColumns)

	orders := []*models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID, limit, offset); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetProductsForOrder loads the active products referenced by an order
// request keyed by product ID
func (r *OrderRepo) GetProductsForOrder(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	query, args, err := sqlx.In(`
		SELECT id, name, slug, sku, description, price, stock, is_active, category,
			created_at, updated_at
		FROM products
		WHERE id IN (?) AND is_active = true
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	products := []*models.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID, nil
}

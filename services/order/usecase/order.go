package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/shopspring/decimal"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/internal/utils"
	"github.com/waithaka/dukasoko/services/order"
)

const (
	maxItemsPerOrder = 50
	maxItemQuantity  = 100

	defaultListLimit = 20
	maxListLimit     = 100

	// Number collisions are rare; a couple of retries cover them
	orderNumberAttempts = 3
)

// Flat shipping fee charged on every order
var shippingFee = decimal.NewFromInt(200)

// orderUC implements the order.OrderUC interface
type orderUC struct {
	cfg       *models.Config
	orderRepo order.OrderRepo
	orderGW   order.OrderGW
}

// NewOrderUC creates a new order use case
func NewOrderUC(
	cfg *models.Config,
	orderRepo order.OrderRepo,
	orderGW order.OrderGW,
) (order.OrderUC, error) {
	return &orderUC{
		cfg:       cfg,
		orderRepo: orderRepo,
		orderGW:   orderGW,
	}, nil
}

// CreateOrder validates the requested items against the catalog,
// snapshots prices into line items and persists the order. Totals are
// computed server side from current catalog prices.
func (uc *orderUC) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, order.NewValidationError("items", "order must contain at least one item")
	}
	if len(req.Items) > maxItemsPerOrder {
		return nil, order.NewValidationError("items", "too many items in one order")
	}
	if req.CustomerEmail == "" {
		return nil, order.NewValidationError("customer_email", "customer email is required")
	}

	phone, err := utils.ValidatePhoneNumber(req.CustomerPhone)
	if err != nil {
		return nil, order.NewValidationError("customer_phone", err.Error())
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	quantities := make(map[uuid.UUID]int, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, order.NewValidationError("items", "must reference valid product IDs")
		}
		if item.Quantity <= 0 || item.Quantity > maxItemQuantity {
			return nil, order.NewValidationError("items", "item quantity out of range")
		}
		if _, seen := quantities[productID]; seen {
			return nil, order.NewValidationError("items", "duplicate product in order")
		}
		productIDs = append(productIDs, productID)
		quantities[productID] = item.Quantity
	}

	products, err := uc.orderRepo.GetProductsForOrder(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		product, ok := products[productID]
		if !ok {
			return nil, order.ErrProductNotFound
		}
		quantity := quantities[productID]
		if !product.InStock(quantity) {
			return nil, order.ErrInsufficientStock
		}

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    quantity,
			Price:       product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	o := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   "mpesa",
		Subtotal:        subtotal,
		ShippingCost:    shippingFee,
		TotalAmount:     subtotal.Add(shippingFee),
		ShippingAddress: req.ShippingAddress,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   phone,
		Items:           items,
	}

	var created *models.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		o.OrderNumber = models.NewOrderNumber(time.Now())
		created, err = uc.orderRepo.CreateOrder(ctx, o)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	event := models.OrderCreatedEvent{
		OrderID:     created.ID.String(),
		OrderNumber: created.OrderNumber,
		UserID:      created.UserID.String(),
		TotalAmount: created.TotalAmount,
		ItemCount:   len(created.Items),
		CreatedAt:   created.CreatedAt,
	}
	if err := uc.orderGW.PublishOrderCreated(ctx, event); err != nil {
		logger.Warn("Failed to publish order created event",
			logger.String("order_id", created.ID.String()),
			logger.Err(err))
	}

	return created, nil
}

// GetOrder retrieves one of the customer's own orders
func (uc *orderUC) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	o, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		// Do not leak other customers' orders
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// ListOrders retrieves a page of the customer's orders
func (uc *orderUC) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.ListOrdersByUser(ctx, userID, limit, offset)
}

// isUniqueViolation reports whether the error is a Postgres unique
// constraint violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	"github.com/waithaka/dukasoko/services/order"
	"github.com/waithaka/dukasoko/services/order/mocks"
)

func catalogProduct(name string, price int64, stock int) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     name,
		SKU:      strings.ToUpper(name) + "-001",
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		IsActive: true,
	}
}

func orderRequest(items ...models.CreateOrderItem) *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Items:         items,
		CustomerEmail: "jane@example.com",
		CustomerPhone: "0712345678",
	}
}

func newOrderUC(t *testing.T, ctrl *gomock.Controller) (order.OrderUC, *mocks.MockOrderRepo, *mocks.MockOrderGW) {
	t.Helper()
	repo := mocks.NewMockOrderRepo(ctrl)
	gw := mocks.NewMockOrderGW(ctrl)
	uc, err := NewOrderUC(&models.Config{}, repo, gw)
	require.NoError(t, err)
	return uc, repo, gw
}

func TestCreateOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, gw := newOrderUC(t, ctrl)

	userID := uuid.New()
	soap := catalogProduct("soap", 150, 20)
	towel := catalogProduct("towel", 600, 5)

	repo.EXPECT().GetProductsForOrder(gomock.Any(), []uuid.UUID{soap.ID, towel.ID}).
		Return(map[uuid.UUID]*models.Product{soap.ID: soap, towel.ID: towel}, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *models.Order) (*models.Order, error) {
			assert.Equal(t, userID, o.UserID)
			assert.Equal(t, models.OrderStatusPending, o.Status)
			assert.Equal(t, models.PaymentStatusPending, o.PaymentStatus)
			assert.Equal(t, "254712345678", o.CustomerPhone)
			assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD"))
			assert.Len(t, o.OrderNumber, 17)

			// 3 x 150 + 2 x 600
			assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(1650)), "subtotal %s", o.Subtotal)
			assert.True(t, o.TotalAmount.Equal(o.Subtotal.Add(o.ShippingCost)))

			require.Len(t, o.Items, 2)
			assert.Equal(t, "soap", o.Items[0].ProductName)
			assert.Equal(t, 3, o.Items[0].Quantity)
			assert.True(t, o.Items[0].Price.Equal(soap.Price))

			o.ID = uuid.New()
			return o, nil
		})
	gw.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.OrderCreatedEvent) error {
			assert.Equal(t, 2, event.ItemCount)
			assert.NotEmpty(t, event.OrderID)
			return nil
		})

	created, err := uc.CreateOrder(context.Background(), userID, orderRequest(
		models.CreateOrderItem{ProductID: soap.ID.String(), Quantity: 3},
		models.CreateOrderItem{ProductID: towel.ID.String(), Quantity: 2},
	))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateOrder_NoItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _ := newOrderUC(t, ctrl)

	_, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest())

	var valErr *order.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "items", valErr.Field)
}

func TestCreateOrder_InvalidPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _ := newOrderUC(t, ctrl)

	req := orderRequest(models.CreateOrderItem{ProductID: uuid.NewString(), Quantity: 1})
	req.CustomerPhone = "12345"

	_, err := uc.CreateOrder(context.Background(), uuid.New(), req)

	var valErr *order.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "customer_phone", valErr.Field)
}

func TestCreateOrder_DuplicateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _ := newOrderUC(t, ctrl)

	productID := uuid.NewString()
	_, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest(
		models.CreateOrderItem{ProductID: productID, Quantity: 1},
		models.CreateOrderItem{ProductID: productID, Quantity: 2},
	))

	var valErr *order.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "duplicate")
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, _ := newOrderUC(t, ctrl)

	repo.EXPECT().GetProductsForOrder(gomock.Any(), gomock.Any()).
		Return(map[uuid.UUID]*models.Product{}, nil)

	_, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest(
		models.CreateOrderItem{ProductID: uuid.NewString(), Quantity: 1},
	))
	assert.ErrorIs(t, err, order.ErrProductNotFound)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, _ := newOrderUC(t, ctrl)

	soap := catalogProduct("soap", 150, 2)
	repo.EXPECT().GetProductsForOrder(gomock.Any(), gomock.Any()).
		Return(map[uuid.UUID]*models.Product{soap.ID: soap}, nil)

	_, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest(
		models.CreateOrderItem{ProductID: soap.ID.String(), Quantity: 3},
	))
	assert.ErrorIs(t, err, order.ErrInsufficientStock)
}

func TestCreateOrder_RetriesOnOrderNumberCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, gw := newOrderUC(t, ctrl)

	soap := catalogProduct("soap", 150, 20)
	repo.EXPECT().GetProductsForOrder(gomock.Any(), gomock.Any()).
		Return(map[uuid.UUID]*models.Product{soap.ID: soap}, nil)

	collision := &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
	gomock.InOrder(
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, collision),
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *models.Order) (*models.Order, error) {
				o.ID = uuid.New()
				return o, nil
			}),
	)
	gw.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).Return(nil)

	created, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest(
		models.CreateOrderItem{ProductID: soap.ID.String(), Quantity: 1},
	))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, gw := newOrderUC(t, ctrl)

	soap := catalogProduct("soap", 150, 20)
	repo.EXPECT().GetProductsForOrder(gomock.Any(), gomock.Any()).
		Return(map[uuid.UUID]*models.Product{soap.ID: soap}, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *models.Order) (*models.Order, error) {
			o.ID = uuid.New()
			return o, nil
		})
	gw.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).
		Return(errors.New("nats: connection closed"))

	created, err := uc.CreateOrder(context.Background(), uuid.New(), orderRequest(
		models.CreateOrderItem{ProductID: soap.ID.String(), Quantity: 1},
	))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, _ := newOrderUC(t, ctrl)

	owner := uuid.New()
	stranger := uuid.New()
	o := &models.Order{ID: uuid.New(), UserID: owner}

	repo.EXPECT().GetOrderByID(gomock.Any(), o.ID).Return(o, nil).Times(2)

	got, err := uc.GetOrder(context.Background(), owner, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = uc.GetOrder(context.Background(), stranger, o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestListOrders_LimitClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, repo, _ := newOrderUC(t, ctrl)

	userID := uuid.New()
	repo.EXPECT().ListOrdersByUser(gomock.Any(), userID, defaultListLimit, 0).Return([]*models.Order{}, nil)
	repo.EXPECT().ListOrdersByUser(gomock.Any(), userID, maxListLimit, 0).Return([]*models.Order{}, nil)

	_, err := uc.ListOrders(context.Background(), userID, 0, -5)
	require.NoError(t, err)

	_, err = uc.ListOrders(context.Background(), userID, 10000, 0)
	require.NoError(t, err)
}

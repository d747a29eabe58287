package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, zap.NewNop(), "")
}

func checkout(items ...models.OrderItemInput) models.CreateOrderInput {
	total := 0.0
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return models.CreateOrderInput{
		CustomerName: "Ana",
		Items:        items,
		Total:        total,
		DeliveryMode: models.DeliveryPickup,
	}
}

func TestCreateOrder_QueuePositionCountsActiveOrders(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	createOrder(t, db, "RCV0001", models.StatusReceived, 10, now)
	createOrder(t, db, "PRP0001", models.StatusPreparing, 10, now)
	createOrder(t, db, "RDY0001", models.StatusReady, 10, now)
	createOrder(t, db, "CAN0001", models.StatusCancelled, 10, now)

	svc := newOrderService(db)
	order, err := svc.Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Free", Quantity: 1, UnitPrice: 5}), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, order.QueuePosition)
	assert.Equal(t, models.StatusReceived, order.Status)
	assert.Len(t, order.ID, 7)

	next, err := svc.Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Free", Quantity: 1, UnitPrice: 5}), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, next.QueuePosition)
}

func TestCreateOrder_PersistsItemsAndTotalAsSent(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Clássico", 28.90, intPtr(50))

	input := checkout(models.OrderItemInput{ProductID: uintPtr(product.ID), ProductName: "Clássico", Quantity: 2, UnitPrice: 28.90})
	input.DeliveryMode = models.DeliveryDelivery
	input.DeliveryAddress = strPtr("Rua A, 10")
	input.DeliveryFee = 5
	input.Total = 99.99
	input.MachineNeeded = true

	order, err := newOrderService(db).Create(context.Background(), input, nil)
	require.NoError(t, err)

	stored, err := newOrderService(db).Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 99.99, stored.Total)
	assert.Equal(t, 5.0, stored.DeliveryFee)
	assert.True(t, stored.MachineNeeded)
	assert.Nil(t, stored.UserID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Clássico", stored.Items[0].ProductName)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestCreateOrder_DecrementsStockClampedAtZero(t *testing.T) {
	db := newTestDB(t)
	plenty := createProduct(t, db, "Plenty", 10, intPtr(10))
	scarce := createProduct(t, db, "Scarce", 10, intPtr(3))

	_, err := newOrderService(db).Create(context.Background(), checkout(
		models.OrderItemInput{ProductID: uintPtr(plenty.ID), ProductName: "Plenty", Quantity: 2, UnitPrice: 10},
		models.OrderItemInput{ProductID: uintPtr(scarce.ID), ProductName: "Scarce", Quantity: 5, UnitPrice: 10},
	), nil)
	require.NoError(t, err)

	assert.Equal(t, 8, stockOf(t, db, plenty.ID))
	assert.Equal(t, 0, stockOf(t, db, scarce.ID))
}

func TestCreateOrder_FreeFormItemsLeaveStockAlone(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Dog", 10, intPtr(7))

	_, err := newOrderService(db).Create(context.Background(), checkout(
		models.OrderItemInput{ProductName: "Custom", Quantity: 3, UnitPrice: 12, CustomDescription: strPtr("no onions")},
		models.OrderItemInput{ProductID: uintPtr(0), ProductName: "Zero id", Quantity: 3, UnitPrice: 1},
	), nil)
	require.NoError(t, err)

	assert.Equal(t, 7, stockOf(t, db, product.ID))
}

func TestCreateOrder_LoyaltyPoints(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	item := models.OrderItemInput{ProductName: "Dog", Quantity: 1, UnitPrice: 10}

	fresh := createUser(t, db, "fresh@example.com", 0)
	almost := createUser(t, db, "almost@example.com", 9)
	full := createUser(t, db, "full@example.com", 10)

	for _, u := range []models.User{fresh, almost, full} {
		id := u.ID
		order, err := svc.Create(context.Background(), checkout(item), &id)
		require.NoError(t, err)
		require.NotNil(t, order.UserID)
		assert.Equal(t, id, *order.UserID)
	}

	assert.Equal(t, 1, pointsOf(t, db, fresh.ID))
	assert.Equal(t, 10, pointsOf(t, db, almost.ID))
	assert.Equal(t, 10, pointsOf(t, db, full.ID))
}

func TestCreateOrder_GuestDoesNotTouchLoyalty(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "member@example.com", 4)

	order, err := newOrderService(db).Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Dog", Quantity: 1, UnitPrice: 10}), nil)
	require.NoError(t, err)

	assert.Nil(t, order.UserID)
	assert.Equal(t, 4, pointsOf(t, db, user.ID))
}

func TestCreateOrder_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	_, err := svc.Create(context.Background(), models.CreateOrderInput{CustomerName: "Ana"}, nil)
	assert.ErrorIs(t, err, ErrMissingItems)

	_, err = svc.Create(context.Background(), models.CreateOrderInput{
		CustomerName: "   ",
		Items:        []models.OrderItemInput{{ProductName: "Dog", Quantity: 1, UnitPrice: 1}},
	}, nil)
	assert.ErrorIs(t, err, ErrMissingCustomerName)

	assert.Zero(t, countRows(t, db, &models.Order{}))
}

func TestCreateOrder_RollsBackEverythingOnFailure(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Dog", 10, intPtr(20))
	user := createUser(t, db, "member@example.com", 3)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_users", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			_ = tx.AddError(errors.New("users table unavailable"))
		}
	}))

	id := user.ID
	_, err := newOrderService(db).Create(context.Background(), checkout(
		models.OrderItemInput{ProductID: uintPtr(product.ID), ProductName: "Dog", Quantity: 4, UnitPrice: 10},
	), &id)
	require.Error(t, err)

	assert.Zero(t, countRows(t, db, &models.Order{}))
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))
	assert.Equal(t, 20, stockOf(t, db, product.ID))
	assert.Equal(t, 3, pointsOf(t, db, user.ID))
}

func TestCreateOrder_RegeneratesCollidingIDs(t *testing.T) {
	db := newTestDB(t)
	createOrder(t, db, "AAAAAAA", models.StatusDelivered, 10, time.Now().UTC())

	svc := newOrderService(db)
	ids := []string{"AAAAAAA", "BBBBBBB"}
	svc.newID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	order, err := svc.Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Dog", Quantity: 1, UnitPrice: 1}), nil)
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBB", order.ID)
}

func TestCreateOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	db := newTestDB(t)
	createOrder(t, db, "AAAAAAA", models.StatusDelivered, 10, time.Now().UTC())

	svc := newOrderService(db)
	svc.newID = func() (string, error) { return "AAAAAAA", nil }

	_, err := svc.Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Dog", Quantity: 1, UnitPrice: 1}), nil)
	assert.ErrorIs(t, err, ErrOrderIDExhausted)
	assert.Equal(t, int64(1), countRows(t, db, &models.Order{}))
}

func TestNewOrderService_Isolation(t *testing.T) {
	db := newTestDB(t)

	assert.Nil(t, NewOrderService(db, zap.NewNop(), "").txOptions)
	serializable := NewOrderService(db, zap.NewNop(), "SERIALIZABLE")
	require.NotNil(t, serializable.txOptions)
}

func TestListOrders_FiltersAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := createUser(t, db, "member@example.com", 0)
	uid := user.ID

	base := time.Now().UTC().Add(-time.Hour)
	createOrder(t, db, "OLD0001", models.StatusDelivered, 10, base)
	createOrder(t, db, "MID0001", models.StatusReceived, 10, base.Add(10*time.Minute))
	mine, err := svc.Create(context.Background(), checkout(models.OrderItemInput{ProductName: "Dog", Quantity: 2, UnitPrice: 5}), &uid)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, mine.ID, all[0].ID)
	assert.Equal(t, "OLD0001", all[2].ID)
	assert.NotNil(t, all[2].Items)

	own, err := svc.List(context.Background(), models.OrderFilter{UserID: &uid})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Len(t, own[0].Items, 1)

	received, err := svc.List(context.Background(), models.OrderFilter{Status: models.StatusReceived})
	require.NoError(t, err)
	assert.Len(t, received, 2)

	page, err := svc.List(context.Background(), models.OrderFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "MID0001", page[0].ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	_, err := newOrderService(newTestDB(t)).Get(context.Background(), "NOPE123")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestQueue_ActiveOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Add(-time.Hour)
	createOrder(t, db, "SECOND1", models.StatusPreparing, 10, base.Add(5*time.Minute))
	createOrder(t, db, "FIRST01", models.StatusReceived, 10, base)
	createOrder(t, db, "DONE001", models.StatusReady, 10, base.Add(-time.Minute))

	queue, err := newOrderService(db).Queue(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "FIRST01", queue[0].ID)
	assert.Equal(t, "SECOND1", queue[1].ID)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createProduct(t, db, "Dog", 10, intPtr(10))
	user := createUser(t, db, "member@example.com", 0)
	uid := user.ID

	order, err := svc.Create(context.Background(), checkout(
		models.OrderItemInput{ProductID: uintPtr(product.ID), ProductName: "Dog", Quantity: 1, UnitPrice: 10},
	), &uid)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, updated.Status)
	assert.Equal(t, order.QueuePosition, updated.QueuePosition)

	// Status changes have no stock or loyalty side effects.
	assert.Equal(t, 9, stockOf(t, db, product.ID))
	assert.Equal(t, 1, pointsOf(t, db, user.ID))

	// Any valid status is accepted from any other.
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusReceived)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "NOPE123", models.StatusReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	stored, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, stored.Status)
}

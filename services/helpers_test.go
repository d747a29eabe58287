package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/initializers"
	"github.com/Kariqs/chapaquente-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := initializers.ConnectToDB(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db, zap.NewNop()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock *int) models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, Category: models.CategoryHotDog, IsActive: true, Tags: []string{}}
	require.NoError(t, db.Create(&product).Error)
	if stock != nil {
		require.NoError(t, db.Create(&models.Stock{ProductID: product.ID, Quantity: *stock}).Error)
	}
	return product
}

func createUser(t *testing.T, db *gorm.DB, email string, points int) models.User {
	t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:               uuid.NewString(),
		Name:             "Customer",
		Email:            email,
		PasswordHash:     "x",
		LoyaltyPoints:    points,
		LoyaltyStartedAt: &now,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createOrder(t *testing.T, db *gorm.DB, id string, status models.OrderStatus, total float64, createdAt time.Time) models.Order {
	t.Helper()

	order := models.Order{
		ID:           id,
		CustomerName: "Existing",
		Status:       status,
		Total:        total,
		DeliveryMode: models.DeliveryPickup,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func stockOf(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var stock models.Stock
	require.NoError(t, db.Where("product_id = ?", productID).First(&stock).Error)
	return stock.Quantity
}

func pointsOf(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()

	var user models.User
	require.NoError(t, db.Where("id = ?", userID).First(&user).Error)
	return user.LoyaltyPoints
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

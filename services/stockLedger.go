package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultLowStockThreshold = 10

const stockLevelColumns = "p.id AS product_id, p.name AS product_name, p.category AS category, " +
	"COALESCE(s.quantity, 0) AS quantity, s.updated_at AS updated_at"

type StockLedger struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStockLedger(db *gorm.DB, log *zap.Logger) *StockLedger {
	return &StockLedger{db: db, log: log.Named("stock")}
}

func (l *StockLedger) levels(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx).
		Table("products AS p").
		Select(stockLevelColumns).
		Joins("LEFT JOIN stock AS s ON s.product_id = p.id")
}

// List returns the quantity of every active product. Products without a
// stock row report 0.
func (l *StockLedger) List(ctx context.Context) ([]models.StockLevel, error) {
	levels := []models.StockLevel{}
	err := l.levels(ctx).
		Where("p.is_active = ?", true).
		Order("p.category, p.name").
		Scan(&levels).Error
	return levels, err
}

// Get returns the quantity of one product, active or not.
func (l *StockLedger) Get(ctx context.Context, productID uint) (*models.StockLevel, error) {
	var level models.StockLevel
	err := l.levels(ctx).Where("p.id = ?", productID).Take(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// Set overwrites the quantity of one product, creating the row if needed.
func (l *StockLedger) Set(ctx context.Context, productID uint, quantity int) (*models.Stock, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	var stock *models.Stock
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stock, err = upsertStock(tx, productID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	stockUpdatesTotal.WithLabelValues("single").Inc()
	l.log.Info("Stock updated", zap.Uint("product_id", productID), zap.Int("quantity", quantity))
	return stock, nil
}

// BatchSet applies every update or none of them.
func (l *StockLedger) BatchSet(ctx context.Context, updates []models.StockUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, ErrEmptyBatch
	}
	for _, u := range updates {
		if u.Quantity == nil || *u.Quantity < 0 {
			return 0, ErrNegativeQuantity
		}
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if _, err := upsertStock(tx, u.ProductID, *u.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	stockUpdatesTotal.WithLabelValues("batch").Add(float64(len(updates)))
	l.log.Info("Stock batch applied", zap.Int("count", len(updates)))
	return len(updates), nil
}

// LowStock lists active products at or below threshold, lowest first.
func (l *StockLedger) LowStock(ctx context.Context, threshold int) ([]models.StockLevel, error) {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}
	levels := []models.StockLevel{}
	err := l.levels(ctx).
		Where("p.is_active = ?", true).
		Where("COALESCE(s.quantity, 0) <= ?", threshold).
		Order("quantity ASC, p.name ASC").
		Scan(&levels).Error
	return levels, err
}

func upsertStock(tx *gorm.DB, productID uint, quantity int) (*models.Stock, error) {
	var exists int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	stock := &models.Stock{ProductID: productID, Quantity: quantity, UpdatedAt: time.Now().UTC()}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(stock).Error
	if err != nil {
		return nil, fmt.Errorf("upsert stock for product %d: %w", productID, err)
	}
	return stock, nil
}

// decrementStock lowers a product's quantity, never below zero. A product
// with no stock row is left alone.
func decrementStock(tx *gorm.DB, productID uint, quantity int) error {
	err := tx.Model(&models.Stock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", quantity, quantity)).Error
	if err != nil {
		return fmt.Errorf("decrement stock for product %d: %w", productID, err)
	}
	return nil
}

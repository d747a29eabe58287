package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultOrderLimit = 50
	MaxOrderLimit     = 200

	maxOrderIDAttempts = 5
)

type OrderService struct {
	db        *gorm.DB
	log       *zap.Logger
	txOptions *sql.TxOptions
	newID     func() (string, error)
}

// NewOrderService wires the order workflow to a database handle. isolation
// may be "serializable" to make concurrent checkouts observe each other's
// queue count; anything else keeps the driver default.
func NewOrderService(db *gorm.DB, log *zap.Logger, isolation string) *OrderService {
	s := &OrderService{
		db:    db,
		log:   log.Named("orders"),
		newID: utils.GenerateOrderID,
	}
	if strings.EqualFold(isolation, "serializable") {
		s.txOptions = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return s
}

func (s *OrderService) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.txOptions != nil {
		return s.db.WithContext(ctx).Transaction(fn, s.txOptions)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// Create validates the checkout payload and persists the order, its items,
// the stock decrements and the loyalty stamp in a single transaction. userID
// is nil for guests.
func (s *OrderService) Create(ctx context.Context, input models.CreateOrderInput, userID *string) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrMissingItems
	}
	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		return nil, ErrMissingCustomerName
	}

	deliveryMode := input.DeliveryMode
	if deliveryMode == "" {
		deliveryMode = models.DeliveryPickup
	}

	order := &models.Order{
		UserID:          userID,
		CustomerName:    customerName,
		Status:          models.StatusReceived,
		Total:           input.Total,
		DeliveryMode:    deliveryMode,
		DeliveryAddress: emptyToNil(input.DeliveryAddress),
		DeliveryFee:     input.DeliveryFee,
		PaymentMethod:   emptyToNil(input.PaymentMethod),
		MachineNeeded:   input.MachineNeeded,
		Observation:     emptyToNil(input.Observation),
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.Order{}).
			Where("status IN ?", models.ActiveStatuses).
			Count(&active).Error; err != nil {
			return fmt.Errorf("count active orders: %w", err)
		}
		order.QueuePosition = int(active) + 1

		id, err := s.allocateID(tx)
		if err != nil {
			return err
		}
		order.ID = id

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, in := range input.Items {
			item := models.OrderItem{
				OrderID:           order.ID,
				ProductID:         productRef(in.ProductID),
				ProductName:       in.ProductName,
				Quantity:          in.Quantity,
				UnitPrice:         in.UnitPrice,
				CustomDescription: emptyToNil(in.CustomDescription),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			if item.ProductID != nil {
				if err := decrementStock(tx, *item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			items = append(items, item)
		}
		order.Items = items

		if userID != nil {
			if err := awardLoyaltyPoint(tx, *userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		orderCreateFailuresTotal.Inc()
		s.log.Error("Order creation rolled back", zap.Error(err))
		return nil, err
	}

	customer := "guest"
	if userID != nil {
		customer = "member"
	}
	ordersCreatedTotal.WithLabelValues(string(order.DeliveryMode), customer).Inc()
	orderQueuePosition.Observe(float64(order.QueuePosition))

	if expected := order.ItemsTotal() + order.DeliveryFee; order.Total+0.005 < expected {
		s.log.Warn("Order total is below items plus delivery fee",
			zap.String("order_id", order.ID),
			zap.Float64("total", order.Total),
			zap.Float64("expected_min", expected),
		)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Int("queue_position", order.QueuePosition),
		zap.Int("items", order.ItemCount()),
		zap.Bool("guest", userID == nil),
	)
	return order, nil
}

// allocateID draws short codes until one is unused inside tx.
func (s *OrderService) allocateID(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}

		var taken int64
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Count(&taken).Error; err != nil {
			return "", fmt.Errorf("check order id: %w", err)
		}
		if taken == 0 {
			return id, nil
		}
		s.log.Warn("Order id collision, regenerating", zap.String("order_id", id))
	}
	return "", ErrOrderIDExhausted
}

func awardLoyaltyPoint(tx *gorm.DB, userID string) error {
	err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("loyalty_points", gorm.Expr(
			"CASE WHEN loyalty_points + 1 > ? THEN ? ELSE loyalty_points + 1 END",
			models.MaxLoyaltyPoints, models.MaxLoyaltyPoints,
		)).Error
	if err != nil {
		return fmt.Errorf("award loyalty point: %w", err)
	}
	return nil
}

// List returns orders newest first with their items. A nil filter.UserID
// means no ownership restriction.
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultOrderLimit
	}
	if limit > MaxOrderLimit {
		limit = MaxOrderLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	orders := []models.Order{}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	return orders, nil
}

// Get loads one order with items. There is no ownership check.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return &order, nil
}

// Queue lists the active orders oldest first.
func (s *OrderService) Queue(ctx context.Context) ([]models.QueueEntry, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Select("id", "status", "created_at").
		Where("status IN ?", models.ActiveStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.QueueEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, models.QueueEntry{ID: o.ID, Status: o.Status, CreatedAt: o.CreatedAt})
	}
	return entries, nil
}

func productRef(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

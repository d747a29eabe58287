package services

import (
	"context"
	"errors"

	"github.com/Kariqs/chapaquente-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateStatus sets an order's status. Any valid status may be written from
// any other one; the forward sequence is a convention of the admin console.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	orderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	s.log.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(status)),
	)
	return &order, nil
}

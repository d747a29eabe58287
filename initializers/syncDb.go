package initializers

import (
	"fmt"

	"github.com/Kariqs/chapaquente-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncDatabase creates missing tables, columns, indexes and foreign keys. It
// is safe to run on every start.
func SyncDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Stock{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	log.Info("Database synced successfully.")
	return nil
}

package database

import (
	"fmt"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/log"
)

// AutoMigrate auto migrate database table schema
func AutoMigrate(db *gorm.DB) error {
	log.Info("Starting database migration...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.ProductImage{},
		&model.CartItem{},
		&model.Transaction{},
		&model.Payment{},
		&model.Shipping{},
		&model.Notification{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		log.Infof("Migrated model: %T", m)
	}

	log.Info("Database migration completed successfully")
	return nil
}

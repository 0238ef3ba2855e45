package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// AutoMigrate creates or updates every table of the ordering schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Restaurant{},
		&models.Admin{},
		&models.Category{},
		&models.Item{},
		&models.Modifier{},
		&models.ModifierOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
	)
}

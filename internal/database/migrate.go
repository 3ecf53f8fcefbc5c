package database

import (
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/models"
)

// Migrate brings the schema up to date for every model the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewLike{},
	)
}

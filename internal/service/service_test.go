package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sapore/backend/internal/database"
	"github.com/sapore/backend/internal/models"
)

// setupTestDB opens an isolated in-memory SQLite database with the full
// schema applied. The DSN is keyed by test name so parallel tests never share
// state, and cache=shared keeps the database alive across pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name string, price float64, category string) *models.MenuItem {
	t.Helper()

	item := models.MenuItem{
		Name:     name,
		Price:    price,
		Category: category,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

// createTestOrder places an order for the given user with one line per item
// id, all with the given quantity.
func createTestOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, itemIDs []uint, quantity int) *models.Order {
	t.Helper()

	order := models.Order{
		UserID:      userID,
		Date:        time.Now().UTC(),
		TotalAmount: 0,
		Status:      "Completed",
	}
	require.NoError(t, db.Create(&order).Error)

	for _, itemID := range itemIDs {
		line := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: itemID,
			Quantity:   quantity,
		}
		require.NoError(t, db.Create(&line).Error)
	}
	return &order
}

func testContext() context.Context {
	return context.Background()
}

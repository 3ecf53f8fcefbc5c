package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Date        time.Time `json:"date"`
	TotalAmount float64   `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      string    `gorm:"size:20" json:"status"`
}

// OrderItem is one line of an order. The (order, menu item) pair is the
// primary key, so a single order carries at most one line per dish.
type OrderItem struct {
	OrderID         uint    `gorm:"primarykey" json:"order_id"`
	MenuItemID      uint    `gorm:"primarykey" json:"menu_item_id"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64 `gorm:"type:numeric(10,2);not null" json:"price_at_purchase"`
}

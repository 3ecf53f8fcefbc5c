package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is the catalog row the menu pipeline and the recommender operate on.
// Listings always work over an in-memory snapshot fetched fresh per request.
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Price       float64        `gorm:"type:numeric(10,2);not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:200" json:"image_url"`
	Category    string         `gorm:"size:50" json:"category"`
	Rating      float64        `json:"rating"`
}

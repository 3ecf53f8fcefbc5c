package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Date       time.Time `json:"date"`
	LikesCount int       `gorm:"default:0" json:"likes_count"`
	ParentID   *uint     `gorm:"index" json:"parent_id"`
}

// ReviewLike records which user liked which review, backing the like toggle.
type ReviewLike struct {
	ReviewID  uint      `gorm:"primarykey" json:"review_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

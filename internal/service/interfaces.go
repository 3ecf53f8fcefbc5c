package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/types"
)

// IAuthService defines the interface for authentication operations.
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IMenuService defines the interface for menu listings.
type IMenuService interface {
	ListMenu(ctx context.Context, f MenuFilters, sortBy, sortOrder string) (*MenuResponse, error)
	GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
}

// IRecommendationService defines the interface for the recommender.
type IRecommendationService interface {
	Recommend(ctx context.Context, userID *uuid.UUID, limit int) ([]RecommendedItem, string, error)
	PopularItems(ctx context.Context, limit int) ([]RecommendedItem, error)
}

// IOrderService defines the interface for order operations.
type IOrderService interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
	CreateOrder(ctx context.Context, userID uuid.UUID, lines []OrderLineInput) (*OrderView, error)
}

// IReviewService defines the interface for review operations.
type IReviewService interface {
	ListReviews(ctx context.Context, currentUser *uuid.UUID) ([]*ReviewView, error)
	CreateReview(ctx context.Context, userID uuid.UUID, content string, parentID *uint) (*ReviewView, error)
	ToggleLike(ctx context.Context, userID uuid.UUID, reviewID uint) (bool, int, error)
}

// IImageService defines the interface for image storage.
type IImageService interface {
	UploadMenuImage(ctx context.Context, imageData []byte, contentType string) (string, error)
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/middleware"
	"github.com/sapore/backend/internal/service"
)

type ReviewHandler struct {
	reviewService service.IReviewService
	authService   service.IAuthService
	rateLimiter   *middleware.RateLimiter
}

func NewReviewHandler(reviewService service.IReviewService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListReviews)

		create := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
		if h.rateLimiter != nil {
			create = append(create, h.rateLimiter.RateLimitMiddleware())
		}
		reviews.POST("", append(create, h.CreateReview)...)
		reviews.POST("/:id/like", middleware.AuthMiddleware(h.authService), h.ToggleLike)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var currentUser *uuid.UUID
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			currentUser = &id
		}
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), currentUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

type createReviewRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to post a review."})
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID.(uuid.UUID), req.Content, req.ParentID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to like a review."})
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	liked, likes, err := h.reviewService.ToggleLike(c.Request.Context(), userID.(uuid.UUID), uint(reviewID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"likes": likes,
	})
}

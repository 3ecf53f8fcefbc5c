package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sapore/backend/internal/middleware"
	"github.com/sapore/backend/internal/service"
)

const defaultRecommendationLimit = 3

type RecommendationHandler struct {
	recommendationService service.IRecommendationService
	authService           service.IAuthService
}

func NewRecommendationHandler(recommendationService service.IRecommendationService, authService service.IAuthService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		authService:           authService,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", middleware.OptionalAuthMiddleware(h.authService), h.GetRecommendations)
}

// GetRecommendations serves the "Recommended for You" list. Anonymous
// visitors and cold-start users get the popularity fallback.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	limit := defaultRecommendationLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	var userID *uuid.UUID
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			userID = &id
		}
	}

	items, label, err := h.recommendationService.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"label": label,
	})
}

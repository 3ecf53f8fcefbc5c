package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapore/backend/internal/api"
	"github.com/sapore/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	menuHandler *api.MenuHandler,
	recommendationHandler *api.RecommendationHandler,
	orderHandler *api.OrderHandler,
	reviewHandler *api.ReviewHandler,
	adminHandler *api.AdminHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	menuHandler.RegisterRoutes(v1)
	recommendationHandler.RegisterRoutes(v1)
	orderHandler.RegisterRoutes(v1)
	reviewHandler.RegisterRoutes(v1)
	adminHandler.RegisterRoutes(v1)

	return router
}

package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sapore/backend/config"
	"github.com/sapore/backend/internal/api"
	"github.com/sapore/backend/internal/middleware"
	"github.com/sapore/backend/internal/router"
	"github.com/sapore/backend/internal/service"
)

// Server wires services, handlers and the HTTP listener together.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds the full handler graph. redisClient and s3Config are optional:
// without Redis the write endpoints run unthrottled, without S3 the admin
// image upload is disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	menuService := service.NewMenuService(db)
	recommendationService := service.NewRecommendationService(db)
	orderService := service.NewOrderService(db)
	reviewService := service.NewReviewService(db)

	var imageService service.IImageService
	if s3Config != nil {
		imageService = service.NewImageService(s3Config)
	}

	var orderLimiter, reviewLimiter *middleware.RateLimiter
	if redisClient != nil {
		orderLimiter = middleware.NewOrderRateLimiter(redisClient)
		reviewLimiter = middleware.NewReviewRateLimiter(redisClient)
	} else {
		log.Printf("Redis not configured, rate limiting disabled")
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewMenuHandler(menuService),
		api.NewRecommendationHandler(recommendationService, authService),
		api.NewOrderHandler(orderService, authService, orderLimiter),
		api.NewReviewHandler(reviewService, authService, reviewLimiter),
		api.NewAdminHandler(db, authService, imageService),
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

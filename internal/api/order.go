package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sapore/backend/internal/middleware"
	"github.com/sapore/backend/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
	authService  service.IAuthService
	rateLimiter  *middleware.RateLimiter
}

func NewOrderHandler(orderService service.IOrderService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authService:  authService,
		rateLimiter:  rateLimiter,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.AuthMiddleware(h.authService))
	{
		orders.GET("", h.ListOrders)
		if h.rateLimiter != nil {
			orders.POST("", h.rateLimiter.RateLimitMiddleware(), h.CreateOrder)
		} else {
			orders.POST("", h.CreateOrder)
		}
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to view orders."})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

type createOrderRequest struct {
	Items []service.OrderLineInput `json:"items"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to place an order."})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), userID.(uuid.UUID), req.Items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid items in cart."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sapore/backend/internal/service"
)

type MenuHandler struct {
	menuService service.IMenuService
}

func NewMenuHandler(menuService service.IMenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("", h.ListMenu)
		menu.GET("/:id", h.GetMenuItem)
	}
}

// ListMenu serves the menu listing. Filtering and sorting run over an
// in-memory catalog snapshot; a total of 0 is a valid "no items found"
// outcome, not an error.
func (h *MenuHandler) ListMenu(c *gin.Context) {
	filters := service.MenuFilters{
		Category:    c.Query("category"),
		SearchQuery: c.Query("q"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filters.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filters.MaxPrice = &v
	}

	resp, err := h.menuService.ListMenu(
		c.Request.Context(),
		filters,
		c.DefaultQuery("sort_by", "price"),
		c.DefaultQuery("sort_order", "asc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	item, err := h.menuService.GetMenuItem(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

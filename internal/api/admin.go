package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/middleware"
	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/service"
)

const maxImageUploadBytes = 5 << 20

// AdminHandler exposes the management surface the admin panel uses: menu
// catalog CRUD and dish photo uploads.
type AdminHandler struct {
	db           *gorm.DB
	authService  service.IAuthService
	imageService service.IImageService
}

func NewAdminHandler(db *gorm.DB, authService service.IAuthService, imageService service.IImageService) *AdminHandler {
	return &AdminHandler{
		db:           db,
		authService:  authService,
		imageService: imageService,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.AuthMiddleware(h.authService), middleware.AdminRequired())
	{
		menu := admin.Group("/menu")
		{
			menu.POST("", h.CreateMenuItem)
			menu.PUT("/:id", h.UpdateMenuItem)
			menu.DELETE("/:id", h.DeleteMenuItem)
			menu.POST("/:id/image", h.UploadMenuItemImage)
		}
	}
}

func (h *AdminHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if item.Name == "" || item.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and price must not be negative"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.MenuItem{}).
		Where("id = ?", uint(id)).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"price":       item.Price,
			"description": item.Description,
			"image_url":   item.ImageURL,
			"category":    item.Category,
			"rating":      item.Rating,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"id":      uint(id),
	})
}

func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.MenuItem{}, "id = ?", uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
		"id":      uint(id),
	})
}

// UploadMenuItemImage stores an uploaded dish photo and points the menu item
// at the stored URL.
func (h *AdminHandler) UploadMenuItemImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var item models.MenuItem
	if err := h.db.WithContext(c.Request.Context()).First(&item, "id = ?", uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.imageService.UploadMenuImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.MenuItem{}).
		Where("id = ?", item.ID).
		Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded successfully",
		"id":        item.ID,
		"image_url": url,
	})
}

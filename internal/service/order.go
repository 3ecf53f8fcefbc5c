package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/models"
)

var ErrEmptyCart = errors.New("no valid items in cart")

// OrderLineInput is one cart line as submitted by the frontend. Prices are
// never taken from the client; the current menu price is authoritative.
type OrderLineInput struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

type OrderLineView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderView struct {
	OrderID string          `json:"orderId"`
	Date    string          `json:"date"`
	Total   float64         `json:"total"`
	Status  string          `json:"status"`
	Items   []OrderLineView `json:"items"`
}

// OrderService handles order placement and order history.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListOrders returns the user's order history, newest first, with lines
// joined against menu item names.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderView{}, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	type lineRow struct {
		OrderID         uint
		MenuItemID      uint
		Quantity        int
		PriceAtPurchase float64
		MenuItemName    string
	}
	var rows []lineRow
	err = s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.order_id, order_items.menu_item_id, order_items.quantity, order_items.price_at_purchase, menu_items.name AS menu_item_name").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("order_items.order_id IN ?", orderIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	linesByOrder := make(map[uint][]OrderLineView)
	for _, row := range rows {
		linesByOrder[row.OrderID] = append(linesByOrder[row.OrderID], OrderLineView{
			ID:       row.MenuItemID,
			Name:     row.MenuItemName,
			Price:    row.PriceAtPurchase,
			Quantity: row.Quantity,
		})
	}

	result := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		result = append(result, serializeOrder(order, linesByOrder[order.ID]))
	}
	return result, nil
}

// CreateOrder places a new order from the given cart lines. Lines referencing
// unknown items or carrying a non-positive quantity are skipped; an order with
// no valid lines is rejected.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, lines []OrderLineInput) (*OrderView, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	menuIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		if line.ID != 0 {
			menuIDs = append(menuIDs, line.ID)
		}
	}

	var items []models.MenuItem
	if len(menuIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", menuIDs).Find(&items).Error; err != nil {
			return nil, err
		}
	}
	menuByID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		menuByID[item.ID] = item
	}

	var (
		orderItems []models.OrderItem
		lineViews  []OrderLineView
		total      float64
	)
	for _, line := range lines {
		item, ok := menuByID[line.ID]
		if !ok || line.Quantity <= 0 {
			continue
		}
		total += item.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:      item.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: item.Price,
		})
		lineViews = append(lineViews, OrderLineView{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: line.Quantity,
		})
	}
	if len(orderItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := models.Order{
		UserID:      userID,
		Date:        time.Now().UTC(),
		TotalAmount: total,
		Status:      "Completed",
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		return tx.Create(&orderItems).Error
	})
	if err != nil {
		return nil, err
	}

	view := serializeOrder(order, lineViews)
	return &view, nil
}

func serializeOrder(order models.Order, lines []OrderLineView) OrderView {
	date := ""
	if !order.Date.IsZero() {
		date = order.Date.Format("2006-01-02")
	}
	status := order.Status
	if status == "" {
		status = "Completed"
	}
	if lines == nil {
		lines = []OrderLineView{}
	}
	return OrderView{
		OrderID: fmt.Sprintf("ORD-%03d", order.ID),
		Date:    date,
		Total:   order.TotalAmount,
		Status:  status,
		Items:   lines,
	}
}

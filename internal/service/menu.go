package service

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/sorting"
)

// MenuFilters are the optional constraints a menu query may carry. Zero values
// mean "no constraint"; nil price bounds are open-ended.
type MenuFilters struct {
	Category    string   `json:"category"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	SearchQuery string   `json:"search_query"`
}

// SortOptions describe the ordering applied to a menu listing.
type SortOptions struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// PriceRange is the min/max facet over valid catalog prices.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MenuQueryResult is the filter+sort pipeline output.
type MenuQueryResult struct {
	Items          []models.MenuItem `json:"items"`
	Total          int               `json:"total"`
	FiltersApplied MenuFilters       `json:"filters_applied"`
	SortApplied    SortOptions       `json:"sort_applied"`
}

// MenuResponse is the full menu listing payload, result plus facets.
type MenuResponse struct {
	Items          []models.MenuItem `json:"items"`
	Total          int               `json:"total"`
	Categories     []string          `json:"categories"`
	PriceRange     PriceRange        `json:"price_range"`
	FiltersApplied MenuFilters       `json:"filters_applied"`
	SortApplied    SortOptions       `json:"sort_applied"`
}

// itemPrice coerces a malformed price to 0 rather than failing the query.
func itemPrice(item models.MenuItem) float64 {
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return 0
	}
	return item.Price
}

func itemRating(item models.MenuItem) float64 {
	if math.IsNaN(item.Rating) || math.IsInf(item.Rating, 0) {
		return 0
	}
	return item.Rating
}

// FilterMenuItems applies all filters in a single pass; predicates are ANDed.
// Category matches exactly but case-insensitively, price bounds are inclusive,
// and the search query is a case-insensitive substring match against name or
// description.
func FilterMenuItems(items []models.MenuItem, f MenuFilters) []models.MenuItem {
	if len(items) == 0 {
		return []models.MenuItem{}
	}

	category := strings.ToLower(strings.TrimSpace(f.Category))
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))

	result := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if category != "" && strings.ToLower(strings.TrimSpace(item.Category)) != category {
			continue
		}

		price := itemPrice(item)
		if f.MinPrice != nil && price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			continue
		}

		if query != "" {
			name := strings.ToLower(item.Name)
			description := strings.ToLower(item.Description)
			if !strings.Contains(name, query) && !strings.Contains(description, query) {
				continue
			}
		}

		result = append(result, item)
	}
	return result
}

// FilterAndSortMenu runs the full pipeline: one filtering pass, then an
// in-memory quicksort by price or rating. An empty result is a valid outcome,
// not an error.
func FilterAndSortMenu(items []models.MenuItem, f MenuFilters, sortBy, sortOrder string) MenuQueryResult {
	filtered := FilterMenuItems(items, f)

	switch sortBy {
	case "rating":
	default:
		sortBy = "price"
	}
	switch strings.ToLower(sortOrder) {
	case "desc":
		sortOrder = "desc"
	default:
		sortOrder = "asc"
	}

	key := itemPrice
	if sortBy == "rating" {
		key = itemRating
	}

	sorted := sorting.QuickSort(filtered, key, sortOrder == "desc")

	return MenuQueryResult{
		Items:          sorted,
		Total:          len(sorted),
		FiltersApplied: f,
		SortApplied:    SortOptions{SortBy: sortBy, SortOrder: sortOrder},
	}
}

// UniqueCategories returns the distinct non-empty category strings, ordered
// case-insensitively. Distinctness is case-sensitive, so "Main Course" and
// "main course" both appear.
func UniqueCategories(items []models.MenuItem) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, item := range items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return sorting.QuickSortStrings(categories)
}

// MenuPriceRange returns the min/max over valid prices, {0,0} when none exist.
func MenuPriceRange(items []models.MenuItem) PriceRange {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, item := range items {
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			continue
		}
		if item.Price < min {
			min = item.Price
		}
		if item.Price > max {
			max = item.Price
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}
	if math.IsInf(max, -1) {
		max = 0
	}
	return PriceRange{Min: min, Max: max}
}

// MenuService serves menu listings and item lookups.
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a new MenuService instance.
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// ListMenu fetches the catalog wholesale and runs the filter/sort pipeline
// over the snapshot. Facets are derived from the full catalog, not from the
// filtered result, so the frontend dropdowns stay complete.
func (s *MenuService) ListMenu(ctx context.Context, f MenuFilters, sortBy, sortOrder string) (*MenuResponse, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}

	result := FilterAndSortMenu(items, f, sortBy, sortOrder)

	return &MenuResponse{
		Items:          result.Items,
		Total:          result.Total,
		Categories:     UniqueCategories(items),
		PriceRange:     MenuPriceRange(items),
		FiltersApplied: result.FiltersApplied,
		SortApplied:    result.SortApplied,
	}, nil
}

// GetMenuItem retrieves a single menu item by id.
func (s *MenuService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

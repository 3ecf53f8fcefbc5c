package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapore/backend/internal/service"
)

func TestListMenuFiltersAndSorts(t *testing.T) {
	env := setupTestEnv(t)
	env.seedMenuItem(t, "Carbonara", 15.99, "Main Course")
	env.seedMenuItem(t, "Margherita Pizza", 13.99, "Main Course")
	env.seedMenuItem(t, "Tiramisu", 6.99, "Dessert")

	w := env.do(t, http.MethodGet, "/api/v1/menu?category=main+course&sort_by=price&sort_order=desc", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp service.MenuResponse
	decodeJSON(t, w, &resp)

	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Carbonara", resp.Items[0].Name)
	assert.Equal(t, "Margherita Pizza", resp.Items[1].Name)
	// Facets cover the whole catalog.
	assert.Equal(t, []string{"Dessert", "Main Course"}, resp.Categories)
	assert.Equal(t, service.PriceRange{Min: 6.99, Max: 15.99}, resp.PriceRange)
}

func TestListMenuPriceBoundsFromQuery(t *testing.T) {
	env := setupTestEnv(t)
	env.seedMenuItem(t, "Carbonara", 15.99, "Main Course")
	env.seedMenuItem(t, "Tiramisu", 6.99, "Dessert")
	env.seedMenuItem(t, "Espresso", 2.99, "Beverage")

	w := env.do(t, http.MethodGet, "/api/v1/menu?min_price=5&max_price=10", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp service.MenuResponse
	decodeJSON(t, w, &resp)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Tiramisu", resp.Items[0].Name)
}

func TestListMenuEmptyResultIsOK(t *testing.T) {
	env := setupTestEnv(t)
	env.seedMenuItem(t, "Carbonara", 15.99, "Main Course")

	w := env.do(t, http.MethodGet, "/api/v1/menu?q=sushi", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp service.MenuResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, 0, resp.Total)
}

func TestGetMenuItem(t *testing.T) {
	env := setupTestEnv(t)
	item := env.seedMenuItem(t, "Tiramisu", 6.99, "Dessert")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/menu/%d", item.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/menu/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/menu/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

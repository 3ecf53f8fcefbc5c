package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapore/backend/internal/service"
)

func TestOrdersRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/orders", "", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListOrders(t *testing.T) {
	env := setupTestEnv(t)
	carbonara := env.seedMenuItem(t, "Carbonara", 15.99, "Main Course")
	token := env.registerUser(t, "mario", false)

	w := env.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": carbonara.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created service.OrderView
	decodeJSON(t, w, &created)
	assert.InDelta(t, 31.98, created.Total, 1e-9)
	assert.Equal(t, "Completed", created.Status)

	w = env.do(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []service.OrderView
	decodeJSON(t, w, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, created.OrderID, orders[0].OrderID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Carbonara", orders[0].Items[0].Name)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "mario", false)

	w := env.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []interface{}{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No valid items in cart.")
}

func TestOrdersAreScopedToTheCaller(t *testing.T) {
	env := setupTestEnv(t)
	carbonara := env.seedMenuItem(t, "Carbonara", 15.99, "Main Course")

	marioToken := env.registerUser(t, "mario", false)
	luigiToken := env.registerUser(t, "luigi", false)

	w := env.do(t, http.MethodPost, "/api/v1/orders", marioToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": carbonara.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/orders", luigiToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []service.OrderView
	decodeJSON(t, w, &orders)
	assert.Empty(t, orders)
}

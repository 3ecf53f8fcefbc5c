package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sapore/backend/internal/database"
	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/service"
)

// testEnv bundles the router and the handles the API tests drive it with.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	authService := service.NewAuthService(db, "test-secret")

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewMenuHandler(service.NewMenuService(db)).RegisterRoutes(v1)
	NewRecommendationHandler(service.NewRecommendationService(db), authService).RegisterRoutes(v1)
	NewOrderHandler(service.NewOrderService(db), authService, nil).RegisterRoutes(v1)
	NewReviewHandler(service.NewReviewService(db), authService, nil).RegisterRoutes(v1)
	NewAdminHandler(db, authService, nil).RegisterRoutes(v1)

	return &testEnv{router: router, db: db, auth: authService}
}

// do performs a JSON request against the test router. A non-empty token is
// sent as a bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerUser(t *testing.T, username string, isAdmin bool) string {
	t.Helper()

	token, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret1")
	require.NoError(t, err)

	if isAdmin {
		require.NoError(t, e.db.Model(&models.User{}).
			Where("username = ?", username).
			Update("is_admin", true).Error)
		claims, err := e.auth.ValidateToken(token)
		require.NoError(t, err)
		user, err := e.auth.GetProfile(context.Background(), claims.UserID)
		require.NoError(t, err)
		token = e.loginAs(t, user.Email)
	}
	return token
}

func (e *testEnv) loginAs(t *testing.T, email string) string {
	t.Helper()
	token, err := e.auth.Login(context.Background(), email, "secret1")
	require.NoError(t, err)
	return token
}

func (e *testEnv) seedMenuItem(t *testing.T, name string, price float64, category string) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: price, Category: category}
	require.NoError(t, e.db.Create(&item).Error)
	return &item
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

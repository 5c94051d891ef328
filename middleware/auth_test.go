package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	config.DB = db

	r := gin.New()
	r.GET("/me", middleware.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.GetPrincipal(c).ID})
	})
	r.GET("/admin", middleware.AuthRequired(), middleware.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/courier", middleware.AuthRequired(), middleware.CourierRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, token string) func(path string) *httptest.ResponseRecorder {
	return func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	user := models.User{Name: "alice", Email: "alice@example.com", PasswordHash: "x", IsCourier: true}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)

	t.Run("valid token resolves the principal", func(t *testing.T) {
		w := doRequest(r, token)("/me")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id"`)
	})

	t.Run("missing or malformed token is unauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "")("/me").Code)
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "garbage")("/me").Code)
	})

	t.Run("token for a deleted account is rejected", func(t *testing.T) {
		ghost := models.User{Name: "ghost", Email: "ghost@example.com", PasswordHash: "x"}
		require.NoError(t, config.DB.Create(&ghost).Error)
		ghostToken, err := middleware.GenerateToken(&ghost)
		require.NoError(t, err)
		require.NoError(t, config.DB.Delete(&ghost).Error)

		assert.Equal(t, http.StatusUnauthorized, doRequest(r, ghostToken)("/me").Code)
	})

	t.Run("role flags are read from the database", func(t *testing.T) {
		// The user carries the courier flag but not admin.
		assert.Equal(t, http.StatusOK, doRequest(r, token)("/courier").Code)
		assert.Equal(t, http.StatusForbidden, doRequest(r, token)("/admin").Code)

		// Granting the flag in the database is immediately effective with
		// the same token: nothing role-related lives in the claims.
		require.NoError(t, config.DB.Model(&models.User{}).
			Where("id = ?", user.ID).Update("is_admin", true).Error)
		assert.Equal(t, http.StatusOK, doRequest(r, token)("/admin").Code)
	})
}

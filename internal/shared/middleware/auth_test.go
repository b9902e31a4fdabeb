package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexload-backend/internal/shared/middleware"
	"nexload-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(manager *jwt.Manager) *gin.Engine {
	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(middleware.CtxUserID)})
	})
	router.GET("/optional", middleware.OptionalAuth(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(middleware.CtxUserID)})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := authTestRouter(manager)

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid cookie", func(t *testing.T) {
		token, err := manager.GenerateSessionToken("user-123", "dev@example.com", "Dev")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})

	t.Run("Bearer header fallback", func(t *testing.T) {
		token, err := manager.GenerateSessionToken("user-456", "dev@example.com", "Dev")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-456")
	})

	t.Run("Tampered token", func(t *testing.T) {
		other := jwt.NewManager("other-secret", time.Hour)
		token, err := other.GenerateSessionToken("user-123", "dev@example.com", "Dev")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := authTestRouter(manager)

	t.Run("No token still passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/optional", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":""`)
	})

	t.Run("Token populates identity", func(t *testing.T) {
		token, err := manager.GenerateSessionToken("user-789", "dev@example.com", "Dev")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/optional", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-789")
	})
}

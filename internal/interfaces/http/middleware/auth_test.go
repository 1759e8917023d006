package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/pkg/auth"
)

func testAuthSetup(t *testing.T) (*gin.Engine, *auth.JWTManager, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "Marketplace Backend"},
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-that-is-long-enough",
			TokenExpiry: time.Hour,
			CookieName:  "jh_token",
		},
	}
	jwtManager := auth.NewJWTManager(cfg)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg, jwtManager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	r.GET("/admin", AuthMiddleware(cfg, jwtManager), AdminMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, jwtManager, cfg
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	r, jwtManager, cfg := testAuthSetup(t)

	token, err := jwtManager.GenerateToken(5, "9876543210", "", auth.RoleBuyer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":5`)
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	r, jwtManager, _ := testAuthSetup(t)

	token, err := jwtManager.GenerateToken(9, "9876543210", "", auth.RoleBuyer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r, _, _ := testAuthSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r, _, cfg := testAuthSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareRejectsBuyer(t *testing.T) {
	r, jwtManager, cfg := testAuthSetup(t)

	token, err := jwtManager.GenerateToken(5, "9876543210", "", auth.RoleBuyer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareAcceptsAdmin(t *testing.T) {
	r, jwtManager, cfg := testAuthSetup(t)

	token, err := jwtManager.GenerateToken(1, "9876543210", "", auth.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

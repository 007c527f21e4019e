package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedesk/internal/domain"
	"timedesk/internal/middleware"
	jwtsvc "timedesk/internal/pkg/jwt"
)

func setupRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	j := jwtsvc.New("test-secret", time.Hour)
	router := gin.New()

	protected := router.Group("/")
	protected.Use(middleware.Auth(j))
	protected.GET("/whoami", func(c *gin.Context) {
		p := middleware.Principal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role, "language": p.Language})
	})

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, j
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthResolvesPrincipal(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(42, "agent", "de")
	require.NoError(t, err)

	w := get(router, "/whoami", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"role":"agent","language":"de"}`, w.Body.String())
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router, _ := setupRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/whoami", "").Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(42, "agent", "en")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/whoami", token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/whoami", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/whoami", "Bearer garbage").Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	router, _ := setupRouter(t)
	other := jwtsvc.New("other-secret", time.Hour)
	token, err := other.GenerateToken(42, "agent", "en")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/whoami", "Bearer "+token).Code)
}

func TestAdminOnly(t *testing.T) {
	router, j := setupRouter(t)

	agentToken, err := j.GenerateToken(1, string(domain.RoleAgent), "en")
	require.NoError(t, err)
	adminToken, err := j.GenerateToken(2, string(domain.RoleAdmin), "en")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(router, "/admin/ping", "Bearer "+agentToken).Code)
	assert.Equal(t, http.StatusOK, get(router, "/admin/ping", "Bearer "+adminToken).Code)
}

package timer_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedesk/internal/domain/timer"
	"timedesk/internal/middleware"
	jwtsvc "timedesk/internal/pkg/jwt"
)

func setupRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := timer.NewRepository(setupDB(t))
	svc := timer.NewService(repo, nil)
	handler := timer.NewHandler(svc)

	j := jwtsvc.New("test-secret", time.Hour)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(j))
	timer.RegisterRoutes(v1, handler)
	return router, j
}

func doToggle(t *testing.T, router *gin.Engine, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/timer/toggle", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/timer/toggle", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestToggleEndpointCreatesThenUpdates(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(1, "agent", "en")
	require.NoError(t, err)

	w := doToggle(t, router, token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Type   string `json:"type"`
		Result struct {
			ID    int64      `json:"id"`
			EndAt *time.Time `json:"end_at"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "created", created.Type)
	assert.Nil(t, created.Result.EndAt)

	w = doToggle(t, router, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		Type   string `json:"type"`
		Result struct {
			ID    int64      `json:"id"`
			EndAt *time.Time `json:"end_at"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "updated", updated.Type)
	assert.Equal(t, created.Result.ID, updated.Result.ID)
	assert.NotNil(t, updated.Result.EndAt)
}

func TestToggleEndpointRejectsBadCorrection(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(1, "agent", "en")
	require.NoError(t, err)

	w := doToggle(t, router, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	w = doToggle(t, router, token, []byte(`{"source":"manual","at":"`+past+`"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "validation", env["type"])
}

func TestToggleEndpointRejectsGarbageBody(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(1, "agent", "en")
	require.NoError(t, err)

	w := doToggle(t, router, token, []byte(`{"source":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "json-parsing", env["type"])
}

func TestCurrentEndpointNotFoundWhenIdle(t *testing.T) {
	router, j := setupRouter(t)
	token, err := j.GenerateToken(1, "agent", "en")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timer/current", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package attachment_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedesk/internal/domain"
	"timedesk/internal/domain/attachment"
	"timedesk/internal/middleware"
	jwtsvc "timedesk/internal/pkg/jwt"
)

type httpFixture struct {
	*fixture
	router *gin.Engine
	jwt    *jwtsvc.Service
}

func setupHTTP(t *testing.T) *httpFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setup(t)
	j := jwtsvc.New("test-secret", time.Hour)

	handler := attachment.NewHandler(f.svc)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(j))
	attachment.RegisterRoutes(v1, handler)

	return &httpFixture{fixture: f, router: router, jwt: j}
}

func (f *httpFixture) tokenFor(t *testing.T, p domain.Principal) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(p.ID, string(p.Role), p.Language)
	require.NoError(t, err)
	return token
}

func (f *httpFixture) do(t *testing.T, req *http.Request, p domain.Principal) *httptest.ResponseRecorder {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, p))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestUploadRequiresContentLength(t *testing.T) {
	f := setupHTTP(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/"+f.ticketID+"/attachments",
		bytes.NewReader([]byte("data")))
	req.Header.Set("X-File-Name", "report.pdf")
	req.Header.Set("Content-Type", "application/pdf")
	req.ContentLength = -1 // chunked transfer, no declared length

	w := f.do(t, req, f.uploader)
	assert.Equal(t, http.StatusLengthRequired, w.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "error-message", env["type"])
}

func TestUploadDownloadOverHTTP(t *testing.T) {
	f := setupHTTP(t)
	payload := bytes.Repeat([]byte("x"), 1024)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/"+f.ticketID+"/attachments",
		bytes.NewReader(payload))
	req.Header.Set("X-File-Name", "report.pdf")
	req.Header.Set("Content-Type", "application/pdf")

	w := f.do(t, req, f.uploader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Type   string `json:"type"`
		Result struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Size int64  `json:"size"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "created", created.Type)
	assert.Equal(t, "report.pdf", created.Result.Name)
	assert.Equal(t, int64(1024), created.Result.Size)

	dl := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/attachments/%s/report.pdf", created.Result.ID), nil)
	w = f.do(t, dl, f.uploader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report.pdf")
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, payload, body)

	// Embedded filename that does not match the stored one: same shape
	// as a nonexistent attachment.
	wrong := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/attachments/%s/wrong.pdf", created.Result.ID), nil)
	wWrong := f.do(t, wrong, f.uploader)

	missing := httptest.NewRequest(http.MethodGet,
		"/api/v1/attachments/00000000-0000-0000-0000-000000000000", nil)
	wMissing := f.do(t, missing, f.uploader)

	assert.Equal(t, http.StatusNotFound, wWrong.Code)
	assert.Equal(t, wMissing.Code, wWrong.Code)
	assert.JSONEq(t, wMissing.Body.String(), wWrong.Body.String())
}

func TestDownloadDeniedLooksLikeMissing(t *testing.T) {
	f := setupHTTP(t)
	a := f.upload(t, "secret.txt", "text/plain", []byte("data"))

	denied := httptest.NewRequest(http.MethodGet, "/api/v1/attachments/"+a.ID, nil)
	wDenied := f.do(t, denied, f.outsider)

	missing := httptest.NewRequest(http.MethodGet,
		"/api/v1/attachments/00000000-0000-0000-0000-000000000000", nil)
	wMissing := f.do(t, missing, f.outsider)

	assert.Equal(t, http.StatusNotFound, wDenied.Code)
	assert.JSONEq(t, wMissing.Body.String(), wDenied.Body.String())
}

func TestUploadRejectsMalformedTicketToken(t *testing.T) {
	f := setupHTTP(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/notatoken/attachments",
		bytes.NewReader([]byte("data")))
	req.Header.Set("X-File-Name", "a.txt")

	w := f.do(t, req, f.uploader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "validation", env["type"])
}

func TestDeleteOverHTTP(t *testing.T) {
	f := setupHTTP(t)
	a := f.upload(t, "todelete.txt", "text/plain", []byte("data"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/attachments/"+a.ID, nil)
	w := f.do(t, req, f.uploader)
	require.Equal(t, http.StatusOK, w.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "deleted", env["type"])
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	f := setupHTTP(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attachments/some-id", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(ErrorHandler(discardLogger()))

	secured := r.Group("/", AdminAuth(testSecret, discardLogger()))
	secured.GET("/staff", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	secured.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("database exploded"))
		c.Abort()
	})
	r.GET("/ctx", func(c *gin.Context) {
		c.String(http.StatusOK, helpers.RequestIDFrom(c.Request.Context()))
	})
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := helpers.IssueToken(testSecret, time.Hour, "u-1", "a@example.com", role)
	require.NoError(t, err)
	return tok
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth(t *testing.T) {
	r := newRouter()

	t.Run("missing token", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/staff", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized access"}`, w.Body.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, models.RoleStaff))
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token(t, models.RoleAdmin)})
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := helpers.IssueToken("other-secret", time.Hour, "u-1", "a@example.com", models.RoleAdmin)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleStaff))
	w := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestErrorHandlerHidesDetails(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-7")
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body models.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, "req-7", body.RequestID)
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestRequestIDPropagates(t *testing.T) {
	r := newRouter()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-portfolio-forms/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		c.Error(apperror.Persistence(errors.New("dial tcp: refused")).WithDetails(gin.H{"username": "alice"}))
	})
	r.GET("/plain", func(c *gin.Context) {
		c.Error(errors.New("boom"))
	})

	t.Run("app error uses its status and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Kind string            `json:"kind"`
				Form map[string]string `json:"form"`
			} `json:"error"`
			RequestID string `json:"request_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "persistence", body.Error.Kind)
		assert.Equal(t, "alice", body.Error.Form["username"])
		assert.NotEmpty(t, body.RequestID)
		assert.NotContains(t, w.Body.String(), "refused")
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long for the limit")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestID_RejectsMalformedHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "<script>", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestMemoryCounter(t *testing.T) {
	m := newMemoryCounter()
	now := time.Now()

	c1, _ := m.incr("rl:form:a", time.Minute, now)
	c2, _ := m.incr("rl:form:a", time.Minute, now.Add(time.Second))
	c3, reset := m.incr("rl:form:a", time.Minute, now.Add(2*time.Second))
	assert.Equal(t, []int{1, 2, 3}, []int{c1, c2, c3})
	assert.Equal(t, now.Add(time.Minute), reset)

	other, _ := m.incr("rl:form:b", time.Minute, now)
	assert.Equal(t, 1, other)

	// Window expired: counting starts again and stale keys are swept.
	c4, _ := m.incr("rl:form:a", time.Minute, now.Add(2*time.Minute))
	assert.Equal(t, 1, c4)
	assert.Equal(t, 1, m.len())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(PerIPRateLimitConfig("rl:test:", 2, time.Minute)))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("198.51.100.1").Code)
	w := send("198.51.100.1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send("198.51.100.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	// Counts are per client IP.
	assert.Equal(t, http.StatusNoContent, send("198.51.100.2").Code)
}

func TestPerIPRateLimitConfig_DefaultWindow(t *testing.T) {
	cfg := PerIPRateLimitConfig("rl:form:", 5, 0)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, "rl:form:", cfg.Prefix)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://portfolio.example.com/"}, true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://portfolio.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	// localhost is only trusted outside production
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

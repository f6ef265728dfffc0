package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestContextLogger(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"request_id": contextutil.GetRequestID(ctx),
			"user_id":    contextutil.GetUserID(ctx),
		})
	})

	t.Run("propagates caller ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		req.Header.Set(middleware.UserIDHeader, " user-1 ")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "rid-1", body["request_id"])
		assert.Equal(t, "user-1", body["user_id"])
		assert.Equal(t, "rid-1", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("generates request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRateLimitByUser(t *testing.T) {
	r := gin.New()
	r.GET("/me", middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if user != "" {
			req.Header.Set(middleware.UserIDHeader, user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			assert.Contains(t, w.Body.String(), `"code":"RATE_LIMITED"`)
		}
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("u-1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u-1"))
	assert.Equal(t, http.StatusNoContent, call("u-2"))
	assert.Equal(t, http.StatusNoContent, call(""))
	assert.Equal(t, http.StatusNoContent, call(""))
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestHTTPMetrics(t *testing.T) {
	m := middleware.NewHTTPMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `hrms_http_requests_total{method="GET",route="/items/:id",status="200"} 1`), body)
	assert.Contains(t, body, "hrms_http_request_duration_seconds")
}

func TestCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/items", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.CORS([]string{"*"}))
		r.POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := preflight(r, "http://anywhere.test")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.CORS([]string{"http://hr.example.com"}))
		r.POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := preflight(r, "http://hr.example.com")
		assert.Equal(t, "http://hr.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		w = preflight(r, "http://evil.test")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

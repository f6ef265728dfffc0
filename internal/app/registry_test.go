package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/shared/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRegisterModules(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	router := gin.New()
	cfg := config.Config{Security: config.SecurityConfig{BcryptCost: 4, LoginRatePerSecond: 1, LoginBurst: 5}}
	registerModules(router, cfg, db, gormDB, nil)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/departments",
		"POST /api/v1/departments",
		"GET /api/v1/departments/:id",
		"PATCH /api/v1/departments/:id",
		"GET /api/v1/employees",
		"POST /api/v1/employees",
		"GET /api/v1/employees/:id",
		"PATCH /api/v1/employees/:id",
		"GET /api/v1/employees/:id/leave-summary",
		"GET /api/v1/leaves",
		"POST /api/v1/leaves",
		"GET /api/v1/leaves/:id",
		"PATCH /api/v1/leaves/:id",
		"POST /api/v1/attendance/check-in",
		"POST /api/v1/attendance/check-out",
		"GET /api/v1/attendance/:employee_id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

package app

import (
	"database/sql"
	"net/http"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/config"
	"go-hrms/internal/shared/credential"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	departments department.Service
	employees   employee.Service
	attendance  attendance.Service
	leaves      leave.Service
	auth        auth.Service
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) modules {
	metrics := middleware.NewHTTPMetrics()
	router.Use(
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.ContextLogger(zap.L()),
		metrics.Middleware(),
	)

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	hasher := credential.NewBcryptHasher(cfg.Security.BcryptCost)

	// --- Services ---
	mods := modules{
		departments: department.NewService(db, departmentRepo, rdb),
		employees:   employee.NewServiceWithOutbox(db, employeeRepo, hasher, cfg.Security.DefaultEmployeePassword, outboxRepo),
		attendance:  attendance.NewService(db, attendanceRepo),
		leaves:      leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo),
		auth:        auth.NewService(employeeRepo, hasher),
	}

	// --- Routes Registration ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, auth.NewHandler(mods.auth), cfg.Security)
		department.RegisterRoutes(api, department.NewHandler(mods.departments))
		employee.RegisterRoutes(api, employee.NewHandler(mods.employees))
		leave.RegisterRoutes(api, leave.NewHandler(mods.leaves))
		attendance.RegisterRoutes(api, attendance.NewHandler(mods.attendance))
	}

	return mods
}

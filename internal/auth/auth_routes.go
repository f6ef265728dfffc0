package auth

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, cfg config.SecurityConfig) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(cfg.LoginRatePerSecond), cfg.LoginBurst), handler.Login)
		auth.GET("/me", middleware.RateLimitByUser(2, 5), handler.Me)
	}
}

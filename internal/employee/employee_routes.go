package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.POST("", handler.Create)
		employees.GET("/:id", handler.GetById)
		employees.GET("/:id/leave-summary", handler.GetLeaveSummary)
		employees.PATCH("/:id", handler.Update)
	}
}

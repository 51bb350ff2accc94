// ================== internal/features/todos/routes.go ==================
package todos

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/pkg/validator"
)

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	validator.MustRegister(validator.StringTag{
		Name:    "priority",
		Valid:   IsPriority,
		Message: "must be one of LOW, MEDIUM, HIGH",
	})
	handler := NewHandler(service)

	todos := router.Group("/todos")
	{
		todos.GET("", handler.List)
		todos.POST("", handler.Create)

		todos.GET("/completed", handler.Completed)
		todos.GET("/incomplete", handler.Incomplete)
		todos.GET("/search", handler.Search)
		todos.GET("/overdue", handler.Overdue)
		todos.GET("/categories", handler.Categories)
		todos.GET("/stats", handler.Stats)
		todos.GET("/category/*category", handler.ByCategory)
		todos.GET("/priority/:priority", handler.ByPriority)

		todos.GET("/:id", handler.Get)
		todos.PUT("/:id", handler.Update)
		todos.DELETE("/:id", handler.Delete)
		todos.PATCH("/:id/toggle", handler.Toggle)
	}
}

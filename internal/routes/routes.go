package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, service *todos.Service, store Pinger) {
	router.GET("/health", health(store))

	api := router.Group("/api")
	todos.RegisterRoutes(api, service)
}

func health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			response.ServiceUnavailable(c, "Database unreachable", "DATABASE_ERROR")
			return
		}

		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	}
}

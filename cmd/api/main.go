// ================== cmd/api/main.go ==================
//
// @title Todo API
// @version 1.0
// @description A RESTful API for creating, updating and filtering todos
// @host localhost:8080
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/xyz-asif/todoapp/docs"
	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/middleware"
	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	logger.Init(logger.Options{
		Level: logger.ParseLevel(cfg.LogLevel),
		File:  cfg.LogFile,
	})
	defer logger.Sync()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	repo, store, err := todos.OpenRepository(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.DBDriver, err)
	}
	defer store.Close()
	logger.Info("Using %s store", cfg.DBDriver)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, todos.NewService(repo), store)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

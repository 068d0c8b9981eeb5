package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/handlers"
	"github.com/jlbbacs/quick-registration/internal/logging"
	"github.com/jlbbacs/quick-registration/internal/middleware"
	"github.com/jlbbacs/quick-registration/internal/observability"
	"github.com/jlbbacs/quick-registration/internal/services"
	"github.com/jlbbacs/quick-registration/internal/storage"

	_ "github.com/jlbbacs/quick-registration/docs"
)

// @title           Quick Registration API
// @version         1.0
// @description     Registration service with an admin surface: clients submit personal details plus an optional photo, and an authenticated admin can list, search, paginate, edit, delete and export registrants to PDF.

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey AdminSession
// @in header
// @name Authorization

// @tag.name registrants
// @tag.description Registrant submission and administration

// @tag.name auth
// @tag.description Admin session management

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize the selected storage backend
	switch config.AppConfig.StorageBackend {
	case "redis":
		config.InitRedis()
	case "mongodb":
		config.InitMongoDB()
	}

	store, err := storage.NewFromConfig()
	if err != nil {
		logging.Logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Initialize services
	services.InitRegistrantService(store)
	services.InitSessionService(context.Background(), store,
		config.AppConfig.AdminUsername, config.AppConfig.AdminPassword)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.POST("/auth/login", handlers.Login)
		v1.POST("/auth/logout", handlers.Logout)

		// Public submission path
		v1.POST("/registrants", handlers.CreateRegistrant)
		v1.POST("/registrants/photo", handlers.UploadPhoto)

		// Admin surface
		admin := v1.Group("", middleware.RequireAdmin())
		{
			admin.GET("/registrants", handlers.ListRegistrants)
			admin.GET("/registrants/export", handlers.ExportRegistrants)
			admin.GET("/registrants/:id", handlers.GetRegistrant)
			admin.PUT("/registrants/:id", handlers.UpdateRegistrant)
			admin.DELETE("/registrants/:id", handlers.DeleteRegistrant)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
			zap.String("storage_backend", config.AppConfig.StorageBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}

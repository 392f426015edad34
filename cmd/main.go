package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"laby-stock-backend/internal/handler"
	"laby-stock-backend/internal/jobs"
	mid "laby-stock-backend/internal/middleware"
	"laby-stock-backend/pkg/config"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/jwtutil"
	"laby-stock-backend/pkg/logger"
	"laby-stock-backend/prometheus"
)

func main() {
	// Load .env file; missing file is fine, env vars may be set directly
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting laby-stock backend",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("driver", appConfig.Database.Driver))

	// Start the metric refresh scheduler
	scheduler, err := jobs.Start(appConfig)
	if err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()
	log.Info("Metrics refresh scheduled",
		zap.String("schedule", appConfig.Jobs.MetricsRefreshSchedule))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Public auth routes
	e.POST("/api/auth/register", handler.Register)
	e.POST("/api/auth/login", handler.Login)

	// Everything else requires a valid token
	api := e.Group("/api", mid.AuthMiddleware)

	api.GET("/auth/me", handler.Me)

	// Categories
	api.GET("/categories", handler.ListCategories)
	api.GET("/categories/:id", handler.GetCategory)
	api.POST("/categories", handler.CreateCategory)
	api.PUT("/categories/:id", handler.UpdateCategory)
	api.DELETE("/categories/:id", handler.DeleteCategory)

	// Product types
	api.GET("/types", handler.ListTypes)
	api.GET("/types/:id", handler.GetType)
	api.POST("/types", handler.CreateType)
	api.PUT("/types/:id", handler.UpdateType)
	api.DELETE("/types/:id", handler.DeleteType)

	// Suppliers
	api.GET("/suppliers", handler.ListSuppliers)
	api.GET("/suppliers/:id", handler.GetSupplier)
	api.POST("/suppliers", handler.CreateSupplier)
	api.PUT("/suppliers/:id", handler.UpdateSupplier)
	api.DELETE("/suppliers/:id", handler.DeleteSupplier)

	// Products
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:id", handler.GetProduct)
	api.POST("/products", handler.CreateProduct)
	api.PUT("/products/:id", handler.UpdateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)

	// Stock entries
	api.GET("/entries", handler.ListEntries)
	api.GET("/entries/:id", handler.GetEntry)
	api.POST("/entries", handler.CreateEntry)
	api.DELETE("/entries/:id", handler.DeleteEntry)

	// Stock exits
	api.GET("/exits", handler.ListExits)
	api.GET("/exits/:id", handler.GetExit)
	api.POST("/exits", handler.CreateExit)
	api.DELETE("/exits/:id", handler.DeleteExit)

	// Alerts
	api.GET("/alerts", handler.ListAlerts)
	api.POST("/alerts/:id/read", handler.MarkAlertRead)
	api.POST("/alerts/read-all", handler.MarkAllAlertsRead)

	// Settings
	api.GET("/settings", handler.GetSettings)
	api.PUT("/settings", handler.UpdateSettings)

	// Dashboard
	api.GET("/dashboard", handler.GetDashboard)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

package main

import (
	"net/http"
	"os"

	"food-marketplace-api/config"
	"food-marketplace-api/logger"
	"food-marketplace-api/middleware"
	"food-marketplace-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := logger.Init(logger.Config{
		Level:       config.GetEnv("LOG_LEVEL", "info"),
		Environment: config.GetEnv("APP_ENV", "development"),
	}); err != nil {
		panic(err)
	}
	defer func() { _ = zap.L().Sync() }()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.InitDB()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
		})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	routes.SetupRoutes(r)

	port := config.GetEnv("PORT", "8080")
	zap.L().Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		zap.L().Fatal("failed to start server", zap.Error(err))
	}
}

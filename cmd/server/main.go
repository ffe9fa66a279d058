package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/adapters/http/routes"
	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/adapters/persistence/repositories"
	"eventhub/internal/config"
	"eventhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "eventhub/docs" // Swagger docs
)

// @title EventHub API
// @version 1.0
// @description Multi-tenant event management backend with JWT authentication and role based access control.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@eventhub.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed roles, event types and the first admin user
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Fatalf("❌ Failed to seed master data: %v", err)
	}

	// Optional Redis client for response caching (nil when unconfigured)
	redisClient := config.NewRedisClient(cfg)

	// Periodic cleanup of expired refresh tokens
	cleanupService := services.NewTokenCleanupService(repositories.NewRefreshTokenRepository(db))
	cleanupService.Start()
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EventHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler(cfg),
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, redis and cfg for dependency injection)
	routes.Setup(app, db, redisClient, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

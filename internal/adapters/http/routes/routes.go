package routes

import (
	"time"

	"eventhub/internal/adapters/http/handlers"
	"eventhub/internal/adapters/http/middleware"
	"eventhub/internal/adapters/persistence/repositories"
	"eventhub/internal/config"
	"eventhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	eventTypeRepo := repositories.NewEventTypeRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(cfg.AMQPURL)
	authService := services.NewAuthService(userRepo, roleRepo, refreshTokenRepo, notifyService, cfg)
	kycService := services.NewKycService(userRepo, roleRepo)
	eventService := services.NewEventService(eventRepo, eventTypeRepo)
	userService := services.NewUserService(userRepo, roleRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	kycHandler := handlers.NewKycHandler(kycService)
	eventHandler := handlers.NewEventHandler(eventService)
	userHandler := handlers.NewUserHandler(userService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited, mounted at the group root)
	setupAuthRoutes(apiV1, authHandler)

	// Event routes (reads public, writes role gated)
	eventRoutes := apiV1.Group("/events")
	setupEventRoutes(eventRoutes, eventHandler, redisClient, cfg)

	// KYC routes (Admin only)
	kycRoutes := apiV1.Group("/kyc")
	kycRoutes.Use(middleware.AuthMiddleware(cfg))
	kycRoutes.Use(middleware.AdminOnly())
	kycRoutes.Post("/approve/:userId", kycHandler.PromoteToManager)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Post("/admin", userHandler.CreateAdmin)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/verify-email", middleware.AuthRateLimiter(), handler.VerifyEmail)
	router.Post("/refresh-token", middleware.AuthRateLimiter(), handler.RefreshToken)
}

// setupEventRoutes configures event routes
func setupEventRoutes(router fiber.Router, handler *handlers.EventHandler, redisClient *redis.Client, cfg *config.Config) {
	// Public reads, cached when Redis is configured
	router.Get("/", middleware.ResponseCache(redisClient, 30*time.Second), handler.GetAll)
	router.Get("/:id", middleware.ResponseCache(redisClient, 30*time.Second), handler.GetByID)

	// Admin/Manager routes
	managerRoutes := router.Group("")
	managerRoutes.Use(middleware.AuthMiddleware(cfg))
	managerRoutes.Use(middleware.ManagerOrAdmin())

	managerRoutes.Post("/", handler.Create)
	managerRoutes.Patch("/:id", handler.Patch)
	managerRoutes.Delete("/:id", handler.Delete)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Delete("/", handler.DeleteAll)
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	AMQPURL  string
	Admin    AdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// AuthConfig holds token signing and lifetime configuration.
// Every field is required; an incomplete signing setup is a startup
// error, never a per-request one.
type AuthConfig struct {
	Key              string
	Issuer           string
	Audience         string
	AccessTokenMins  int
	RefreshTokenSize int
	RefreshTokenDays int
}

// RedisConfig holds optional Redis configuration for response caching
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AdminConfig holds seed credentials for the first admin user
type AdminConfig struct {
	Email    string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(),
		Auth:     auth,
		Redis:    loadRedisConfig(),
		AMQPURL:  os.Getenv("RABBITMQ_URL"),
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "eventhub"),
	}
}

// loadAuthConfig loads token configuration and rejects incomplete setups
func loadAuthConfig() (AuthConfig, error) {
	key := os.Getenv("AUTH_KEY")
	if key == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_KEY is required")
	}

	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_ISSUER is required")
	}

	audience := os.Getenv("AUTH_AUDIENCE")
	if audience == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_AUDIENCE is required")
	}

	accessMins, err := requirePositiveInt("AUTH_EXPIRE_MINUTES")
	if err != nil {
		return AuthConfig{}, err
	}

	refreshSize, err := requirePositiveInt("AUTH_REFRESH_TOKEN_SIZE")
	if err != nil {
		return AuthConfig{}, err
	}

	refreshDays, err := requirePositiveInt("AUTH_REFRESH_TOKEN_EXPIRE_DAYS")
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		Key:              key,
		Issuer:           issuer,
		Audience:         audience,
		AccessTokenMins:  accessMins,
		RefreshTokenSize: refreshSize,
		RefreshTokenDays: refreshDays,
	}, nil
}

// loadRedisConfig loads optional Redis config
func loadRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// requirePositiveInt reads an env var that must parse to a positive integer
func requirePositiveInt(key string) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got '%s'", key, raw)
	}
	return n, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}

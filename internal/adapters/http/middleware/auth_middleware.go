package middleware

import (
	"strings"

	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/config"
	"eventhub/internal/pkg/jwt"
	"eventhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Authorization is
// decided entirely from the verified token claims; the database is not
// consulted per request.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.Auth.Key, cfg.Auth.Issuer, cfg.Auth.Audience)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID())
		c.Locals("email", claims.Email)
		c.Locals("roles", claims.Roles)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").([]string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			for _, role := range roles {
				if role == allowed {
					return c.Next()
				}
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the Admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// ManagerOrAdmin middleware allows Manager or Admin roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(models.RoleManager, models.RoleAdmin)
}

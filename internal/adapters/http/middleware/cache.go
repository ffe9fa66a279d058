package middleware

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// ResponseCache caches successful GET responses in Redis for ttl.
// With a nil client the middleware is a pass-through, so the API works
// unchanged without Redis.
func ResponseCache(client *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := cacheKey(c)

		ctx, cancel := context.WithTimeout(c.Context(), 500*time.Millisecond)
		cached, err := client.Get(ctx, key).Bytes()
		cancel()
		if err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set("X-Cache", "HIT")
			return c.Status(fiber.StatusOK).Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}
		c.Set("X-Cache", "MISS")

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())

			// cache failures never fail the request
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			_ = client.Set(ctx, key, body, ttl).Err()
			cancel()
		}

		return nil
	}
}

// cacheKey builds a stable key from route and query string
func cacheKey(c *fiber.Ctx) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + string(c.Request().URI().QueryString())))
	return fmt.Sprintf("cache:%x", sum)
}

package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/tldr-relay/internal/logger"
)

// AdminOnly guards admin routes with a shared API key, read from the
// X-API-Key header or a Bearer token. With an empty adminKey the routes are
// reported as missing.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return fiber.ErrNotFound
		}

		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			apiKey = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}

		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Admin access attempt without API key")
			return fiber.NewError(fiber.StatusUnauthorized, "API key is required")
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized admin access attempt")
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}

		return c.Next()
	}
}

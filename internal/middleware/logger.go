package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bilgisen/tldr-relay/internal/logger"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool

	// Logger defaults to the global logger.
	Logger *zerolog.Logger
}

// NewLogger logs one line per request with its latency and status.
func NewLogger(cfg LoggerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		log := cfg.Logger
		if log == nil {
			log = logger.Get()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var event *zerolog.Event
		if status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		} else {
			event = log.Info()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Dur("latency", time.Since(start)).
			Msg("request")

		return err
	}
}

// RequestLogger logs every request except health probes.
func RequestLogger() fiber.Handler {
	return NewLogger(LoggerConfig{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	})
}

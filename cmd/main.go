package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bilgisen/tldr-relay/internal/api"
	"github.com/bilgisen/tldr-relay/internal/app"
	"github.com/bilgisen/tldr-relay/internal/config"
	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/middleware"
)

func main() {
	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.LogPretty,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		log.Info().Msg("Closing ledger...")
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing ledger")
		}
	}()

	// Create Fiber app with custom config
	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	server.Use(recover.New())
	server.Use(middleware.RequestLogger())

	handlers := api.NewHandlers(application.Processor, application.Store, application.Reports, 0)
	api.SetupRoutes(server, handlers, cfg.AdminAPIKey)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

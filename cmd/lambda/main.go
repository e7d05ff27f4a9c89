// Command lambda runs a publishing pass per invocation, typically fired by an
// EventBridge schedule on weekday mornings.
package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/bilgisen/tldr-relay/internal/app"
	"github.com/bilgisen/tldr-relay/internal/config"
	"github.com/bilgisen/tldr-relay/internal/logger"
	"github.com/bilgisen/tldr-relay/internal/models"
)

// Response is the Lambda response
type Response struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Status     models.RunStatus  `json:"status,omitempty"`
	Date       string            `json:"date,omitempty"`
	Posted     []models.Category `json:"posted,omitempty"`
	Pending    int               `json:"pending"`
}

// Handler is the Lambda entry point. The event payload is ignored.
func Handler(ctx context.Context, event interface{}) (Response, error) {
	// Only /tmp is writable inside Lambda.
	if os.Getenv("STORAGE_PATH") == "" {
		os.Setenv("STORAGE_PATH", "/tmp/tldr-relay")
	}

	cfg, err := config.Load()
	if err != nil {
		return Response{StatusCode: 400, Message: err.Error()}, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: false,
	}); err != nil {
		return Response{StatusCode: 500, Message: err.Error()}, err
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to initialize application")
		return Response{StatusCode: 500, Message: err.Error()}, err
	}
	defer application.Close()

	result := application.RunOnce(ctx)

	return Response{
		StatusCode: 200,
		Message:    result.Summary(),
		Status:     result.Status,
		Date:       result.Date,
		Posted:     result.Posted,
		Pending:    result.Pending(),
	}, nil
}

func main() {
	lambda.Start(Handler)
}

package gateway

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"travel-assistant/infrastructure/config"
	"travel-assistant/infrastructure/di"
)

// Start wires the container, builds the handler and hands it to the Lambda
// runtime. It does not return.
func Start(build func(*di.Container) *Handler) {
	started := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := build(container)
	container.Logger.Info("Lambda cold start completed",
		zap.String("operation", handler.operation),
		zap.Duration("duration", time.Since(started)),
	)

	lambda.Start(handler.Handle)
}

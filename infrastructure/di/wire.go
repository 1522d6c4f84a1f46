//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"travel-assistant/application/services"
	"travel-assistant/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDomainConfig,
	ProvideTracer,
	ProvideCloudWatchClient,
	ProvideMetrics,
	ProvideS3Client,
	ProvideBookingStore,
	ProvideDynamoDBClient,
	ProvideSessionStore,
	ProvideEventBridgeClient,
	ProvideEventPublisher,
	ProvideBedrockRuntimeClient,
	ProvideBedrockAgentRuntimeClient,
	ProvideTextGenerator,
	ProvideKnowledgeRetriever,
	ProvideGuardrailsAgent,
	ProvideAvailabilitySystem,
	ProvideBookingSystem,
	ProvideLoyaltySystem,
	services.NewInventory,
	services.NewReservations,
	ProvideIdeationService,
	services.NewAvailabilityService,
	services.NewBookingService,
	ProvideBookingQAService,
	services.NewChatService,
	ProvideErrorHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

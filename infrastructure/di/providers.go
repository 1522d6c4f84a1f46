package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/application/services"
	domainconfig "travel-assistant/domain/config"
	"travel-assistant/infrastructure/bedrock"
	"travel-assistant/infrastructure/config"
	"travel-assistant/infrastructure/external"
	"travel-assistant/infrastructure/messaging/eventbridge"
	"travel-assistant/infrastructure/persistence/dynamodb"
	"travel-assistant/infrastructure/persistence/s3"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
)

const (
	serviceName      = "travel-assistant"
	metricsNamespace = "TravelAssistant"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	return zapCfg.Build(zap.Fields(zap.String("service", serviceName)))
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDomainConfig returns the pricing and generation rules
func ProvideDomainConfig() (*domainconfig.DomainConfig, error) {
	rules := domainconfig.DefaultDomainConfig()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates metrics instance. Publishing is off unless enabled.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(metricsNamespace, nil, logger)
	}
	return observability.NewMetrics(metricsNamespace, client, logger)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideBookingStore creates the S3 booking store
func ProvideBookingStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.BookingStore {
	return s3.NewBookingStore(client, cfg.BookingsBucket, logger)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideSessionStore creates the chat session store, or nil without a table
func ProvideSessionStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SessionStore {
	if cfg.SessionsTable == "" {
		return nil
	}
	return dynamodb.NewSessionStore(client, cfg.SessionsTable, logger)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideEventPublisher creates the EventBridge publisher, or nil without a bus
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideBedrockRuntimeClient creates a Bedrock runtime client
func ProvideBedrockRuntimeClient(awsCfg aws.Config) *bedrockruntime.Client {
	return bedrockruntime.NewFromConfig(awsCfg)
}

// ProvideBedrockAgentRuntimeClient creates a Bedrock agent runtime client
func ProvideBedrockAgentRuntimeClient(awsCfg aws.Config) *bedrockagentruntime.Client {
	return bedrockagentruntime.NewFromConfig(awsCfg)
}

// ProvideTextGenerator creates the Bedrock text generator
func ProvideTextGenerator(client *bedrockruntime.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.TextGenerator {
	return bedrock.NewTextGenerator(client, cfg.DefaultTextModel, tracer, logger)
}

// ProvideKnowledgeRetriever creates the knowledge base retriever, or nil without a knowledge base
func ProvideKnowledgeRetriever(client *bedrockagentruntime.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.KnowledgeRetriever {
	if cfg.KnowledgeBaseID == "" {
		return nil
	}
	return bedrock.NewKnowledgeBase(client, cfg.KnowledgeBaseID, tracer, logger)
}

// ProvideGuardrailsAgent creates the guardrails agent client, or nil when not configured
func ProvideGuardrailsAgent(client *bedrockagentruntime.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.GuardrailsAgent {
	if !cfg.GuardrailsEnabled() {
		return nil
	}
	return bedrock.NewGuardrailsAgent(client, cfg.GuardrailsAgentID, cfg.GuardrailsAgentAliasID, tracer, logger)
}

// ProvideAvailabilitySystem creates the partner availability client, or nil to simulate
func ProvideAvailabilitySystem(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.AvailabilitySystem {
	if cfg.AvailabilitySystemURL == "" {
		return nil
	}
	return external.NewAvailabilityClient(cfg.AvailabilitySystemURL, cfg.ExternalAPIKey, cfg.AvailabilityTimeout, external.DefaultBreakerConfig(), tracer, logger)
}

// ProvideBookingSystem creates the partner booking client, or nil to simulate
func ProvideBookingSystem(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.BookingSystem {
	if cfg.BookingSystemURL == "" {
		return nil
	}
	return external.NewBookingClient(cfg.BookingSystemURL, cfg.ExternalAPIKey, cfg.BookingTimeout, external.DefaultBreakerConfig(), tracer, logger)
}

// ProvideLoyaltySystem creates the loyalty client, or nil to skip loyalty
func ProvideLoyaltySystem(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.LoyaltySystem {
	if cfg.LoyaltySystemURL == "" {
		return nil
	}
	return external.NewLoyaltyClient(cfg.LoyaltySystemURL, cfg.ExternalAPIKey, cfg.LoyaltyTimeout, external.DefaultBreakerConfig(), tracer, logger)
}

// ProvideIdeationService creates the ideation service
func ProvideIdeationService(
	generator ports.TextGenerator,
	knowledge ports.KnowledgeRetriever,
	rules *domainconfig.DomainConfig,
	cfg *config.Config,
	logger *zap.Logger,
) *services.IdeationService {
	return services.NewIdeationService(generator, knowledge, rules, cfg.IdeationModelID, logger)
}

// ProvideBookingQAService creates the booking question service
func ProvideBookingQAService(
	store ports.BookingStore,
	generator ports.TextGenerator,
	rules *domainconfig.DomainConfig,
	cfg *config.Config,
	logger *zap.Logger,
) *services.BookingQAService {
	return services.NewBookingQAService(store, generator, rules, cfg.QAModelID, logger)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/pkg/observability"
)

// RuntimeAPI is the subset of the Bedrock runtime client used here
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// TextGenerator implements ports.TextGenerator over Bedrock InvokeModel
type TextGenerator struct {
	client       RuntimeAPI
	defaultModel string
	tracer       *observability.Tracer
	logger       *zap.Logger
}

// NewTextGenerator creates a text generator. defaultModel is used when the
// caller leaves GenerationOptions.ModelID empty.
func NewTextGenerator(client RuntimeAPI, defaultModel string, tracer *observability.Tracer, logger *zap.Logger) *TextGenerator {
	return &TextGenerator{
		client:       client,
		defaultModel: defaultModel,
		tracer:       tracer,
		logger:       logger,
	}
}

// Generate invokes the model once and returns its text
func (g *TextGenerator) Generate(ctx context.Context, prompt string, opts ports.GenerationOptions) (string, error) {
	modelID := opts.ModelID
	if modelID == "" {
		modelID = g.defaultModel
	}
	family := familyOf(modelID)
	if family == familyGeneric {
		g.logger.Warn("Unsupported model, using generic request format", zap.String("model_id", modelID))
	}

	body, err := requestBody(family, prompt, opts.MaxTokens, opts.Temperature)
	if err != nil {
		return "", fmt.Errorf("failed to build request body: %w", err)
	}

	var text string
	err = g.tracer.TraceFunction(ctx, "bedrock.InvokeModel", func(ctx context.Context) error {
		g.tracer.AddAnnotation(ctx, "model_id", modelID)

		out, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(modelID),
			Body:        body,
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("failed to invoke model %s: %w", modelID, err)
		}

		text, err = responseText(family, out.Body)
		return err
	})
	if err != nil {
		g.logger.Error("Model invocation failed", zap.String("model_id", modelID), zap.Error(err))
		return "", err
	}

	g.logger.Info("Generated model response", zap.String("model_id", modelID), zap.Int("length", len(text)))
	return text, nil
}

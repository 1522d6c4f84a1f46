package services

import (
	"context"

	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/config"
	"travel-assistant/domain/ideas"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/utils"
)

// IdeationRequest asks for travel recommendations.
type IdeationRequest struct {
	Query       string                 `json:"query" validate:"required"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// IdeationResult carries the parsed recommendations.
type IdeationResult struct {
	Query         string             `json:"query"`
	Ideas         []ideas.IdeaRecord `json:"ideas"`
	KnowledgeUsed bool               `json:"knowledge_used"`
	Timestamp     string             `json:"timestamp"`
}

// IdeationService generates travel ideas, grounded in the knowledge base when one is configured.
type IdeationService struct {
	generator ports.TextGenerator
	knowledge ports.KnowledgeRetriever
	rules     *config.DomainConfig
	modelID   string
	logger    *zap.Logger
}

// NewIdeationService creates a new ideation service. knowledge may be nil.
func NewIdeationService(
	generator ports.TextGenerator,
	knowledge ports.KnowledgeRetriever,
	rules *config.DomainConfig,
	modelID string,
	logger *zap.Logger,
) *IdeationService {
	return &IdeationService{
		generator: generator,
		knowledge: knowledge,
		rules:     rules,
		modelID:   modelID,
		logger:    logger,
	}
}

// GenerateIdeas answers a travel query with a list of structured ideas
func (s *IdeationService) GenerateIdeas(ctx context.Context, req IdeationRequest) (*IdeationResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	passages := s.retrieve(ctx, req.Query)

	prompt := ideationPrompt(req.Query, formatPreferences(req.Preferences), formatKnowledge(passages))

	s.logger.Info("Generating travel ideas", zap.String("model_id", s.modelID))
	text, err := s.generator.Generate(ctx, prompt, ports.GenerationOptions{
		ModelID:     s.modelID,
		MaxTokens:   s.rules.IdeationMaxTokens,
		Temperature: s.rules.IdeationTemperature,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &IdeationResult{
		Query:         req.Query,
		Ideas:         ideas.Parse(text),
		KnowledgeUsed: len(passages) > 0,
		Timestamp:     utils.NowRFC3339(),
	}, nil
}

// retrieve looks up supporting knowledge. Retrieval problems are logged and
// the ideas are generated without knowledge.
func (s *IdeationService) retrieve(ctx context.Context, query string) []ports.KnowledgePassage {
	if s.knowledge == nil {
		return nil
	}

	passages, err := s.knowledge.Retrieve(ctx, query, s.rules.KnowledgeResults)
	if err != nil {
		s.logger.Warn("Knowledge retrieval failed, continuing without knowledge", zap.Error(err))
		return nil
	}

	s.logger.Info("Retrieved knowledge items", zap.Int("count", len(passages)))
	return passages
}

package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/pkg/observability"
)

// RetrieveAPI is the subset of the Bedrock agent runtime client used for knowledge lookups
type RetrieveAPI interface {
	Retrieve(ctx context.Context, params *bedrockagentruntime.RetrieveInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveOutput, error)
}

// KnowledgeBase implements ports.KnowledgeRetriever over a Bedrock knowledge base
type KnowledgeBase struct {
	client          RetrieveAPI
	knowledgeBaseID string
	tracer          *observability.Tracer
	logger          *zap.Logger
}

// NewKnowledgeBase creates a retriever for one knowledge base
func NewKnowledgeBase(client RetrieveAPI, knowledgeBaseID string, tracer *observability.Tracer, logger *zap.Logger) *KnowledgeBase {
	return &KnowledgeBase{
		client:          client,
		knowledgeBaseID: knowledgeBaseID,
		tracer:          tracer,
		logger:          logger,
	}
}

// Retrieve runs a vector search and returns up to maxResults passages
func (k *KnowledgeBase) Retrieve(ctx context.Context, query string, maxResults int) ([]ports.KnowledgePassage, error) {
	var out *bedrockagentruntime.RetrieveOutput
	err := k.tracer.TraceFunction(ctx, "bedrock.Retrieve", func(ctx context.Context) error {
		var err error
		out, err = k.client.Retrieve(ctx, &bedrockagentruntime.RetrieveInput{
			KnowledgeBaseId: aws.String(k.knowledgeBaseID),
			RetrievalQuery:  &types.KnowledgeBaseQuery{Text: aws.String(query)},
			RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
				VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
					NumberOfResults: aws.Int32(int32(maxResults)),
				},
			},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve from knowledge base %s: %w", k.knowledgeBaseID, err)
	}

	passages := make([]ports.KnowledgePassage, 0, len(out.RetrievalResults))
	for _, result := range out.RetrievalResults {
		passages = append(passages, toPassage(result))
	}

	k.logger.Info("Retrieved knowledge passages",
		zap.String("knowledge_base_id", k.knowledgeBaseID),
		zap.Int("count", len(passages)),
	)
	return passages, nil
}

func toPassage(result types.KnowledgeBaseRetrievalResult) ports.KnowledgePassage {
	passage := ports.KnowledgePassage{
		Metadata: map[string]string{},
		Score:    aws.ToFloat64(result.Score),
	}
	if result.Content != nil {
		passage.Content = strings.TrimSpace(aws.ToString(result.Content.Text))
	}
	if loc := result.Location; loc != nil && loc.S3Location != nil {
		passage.Metadata["source"] = "s3://" + strings.TrimPrefix(aws.ToString(loc.S3Location.Uri), "s3://")
	}
	return passage
}

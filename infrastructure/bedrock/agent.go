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

// AgentAPI is the subset of the Bedrock agent runtime client used to talk to agents
type AgentAPI interface {
	InvokeAgent(ctx context.Context, params *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// responseStream is the part of the agent event stream the completion reader needs
type responseStream interface {
	Events() <-chan types.ResponseStream
	Close() error
	Err() error
}

// GuardrailsAgent implements ports.GuardrailsAgent with a Bedrock agent alias
type GuardrailsAgent struct {
	client  AgentAPI
	agentID string
	aliasID string
	tracer  *observability.Tracer
	logger  *zap.Logger
}

// NewGuardrailsAgent creates a client for one agent alias
func NewGuardrailsAgent(client AgentAPI, agentID, aliasID string, tracer *observability.Tracer, logger *zap.Logger) *GuardrailsAgent {
	return &GuardrailsAgent{
		client:  client,
		agentID: agentID,
		aliasID: aliasID,
		tracer:  tracer,
		logger:  logger,
	}
}

// Invoke sends one message to the agent and collects the streamed completion
func (a *GuardrailsAgent) Invoke(ctx context.Context, inputText, sessionID string) (ports.AgentResponse, error) {
	var resp ports.AgentResponse
	err := a.tracer.TraceFunction(ctx, "bedrock.InvokeAgent", func(ctx context.Context) error {
		out, err := a.client.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
			AgentId:      aws.String(a.agentID),
			AgentAliasId: aws.String(a.aliasID),
			SessionId:    aws.String(sessionID),
			InputText:    aws.String(inputText),
		})
		if err != nil {
			return fmt.Errorf("failed to invoke agent %s: %w", a.agentID, err)
		}

		var completion string
		if stream := out.GetStream(); stream != nil {
			if completion, err = readCompletion(stream); err != nil {
				return err
			}
		}
		resp = ports.AgentResponse{Completion: completion, SessionID: aws.ToString(out.SessionId)}
		return nil
	})
	if err != nil {
		a.logger.Error("Agent invocation failed", zap.String("agent_id", a.agentID), zap.Error(err))
		return ports.AgentResponse{}, err
	}

	a.logger.Info("Agent invoked", zap.String("agent_id", a.agentID), zap.String("session_id", resp.SessionID))
	return resp, nil
}

// readCompletion concatenates every chunk on the stream
func readCompletion(stream responseStream) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for event := range stream.Events() {
		if chunk, ok := event.(*types.ResponseStreamMemberChunk); ok {
			sb.Write(chunk.Value.Bytes)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("failed to read agent stream: %w", err)
	}
	return sb.String(), nil
}

package ports

import "context"

// GenerationOptions tunes a single text generation call.
type GenerationOptions struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
}

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}

// KnowledgePassage is one retrieved knowledge base chunk.
type KnowledgePassage struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    float64           `json:"score"`
}

// KnowledgeRetriever looks up passages relevant to a query.
type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, query string, maxResults int) ([]KnowledgePassage, error)
}

// AgentResponse is what a conversational agent returned for one turn.
type AgentResponse struct {
	Completion string
	SessionID  string
}

// GuardrailsAgent screens a chat message and replies to it.
type GuardrailsAgent interface {
	Invoke(ctx context.Context, inputText, sessionID string) (AgentResponse, error)
}

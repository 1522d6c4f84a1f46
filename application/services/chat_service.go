package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/config"
	"travel-assistant/domain/events"
	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/utils"
)

const (
	noGuardrailsReply = "No guardrails configured. Please configure Bedrock Guardrails for content filtering."
	defaultChatReply  = "I understand you're interested in travel. Let me help you plan your trip."
)

// refusalMarkers identify a guardrails completion that declined the message.
var refusalMarkers = []string{"I apologize, but I cannot", "I'm unable to"}

// ChatRequest is one message from the chat client.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// ChatReply is the assistant's answer. Flagged replies carry no context.
type ChatReply struct {
	Message   string                      `json:"message"`
	SessionID string                      `json:"session_id"`
	Flagged   bool                        `json:"flagged,omitempty"`
	Context   *travel.ConversationContext `json:"context,omitempty"`
}

// ChatService screens chat messages through the guardrails agent.
type ChatService struct {
	guardrails ports.GuardrailsAgent
	sessions   ports.SessionStore
	publisher  ports.EventPublisher
	rules      *config.DomainConfig
	logger     *zap.Logger
}

// NewChatService creates a new chat service. guardrails, sessions and
// publisher may each be nil.
func NewChatService(
	guardrails ports.GuardrailsAgent,
	sessions ports.SessionStore,
	publisher ports.EventPublisher,
	rules *config.DomainConfig,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		guardrails: guardrails,
		sessions:   sessions,
		publisher:  publisher,
		rules:      rules,
		logger:     logger,
	}
}

// Chat handles one message, starting a new session when none is given
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.logger.Info("Generated new session ID", zap.String("session_id", sessionID))
	}
	logger := s.logger.With(zap.String("session_id", sessionID))

	conversation := &travel.ConversationContext{
		Timestamp: utils.NowRFC3339(),
		SessionID: sessionID,
		User:      travel.ContextUser{ID: req.UserID},
	}

	var text string
	if s.guardrails != nil {
		resp, err := s.guardrails.Invoke(ctx, req.Message, sessionID)
		if err != nil {
			return nil, apperrors.NewExternalError("guardrails", err)
		}
		text = resp.Completion

		if isRefusal(text) {
			logger.Warn("Message flagged by guardrails")
			s.record(ctx, sessionID, req.UserID, true)
			return &ChatReply{Message: text, SessionID: sessionID, Flagged: true}, nil
		}
		logger.Info("Message passed guardrails check")
	} else {
		text = noGuardrailsReply
		logger.Warn("No guardrails configured, using fallback response")
	}

	if text == "" {
		text = defaultChatReply
	}
	s.record(ctx, sessionID, req.UserID, false)

	return &ChatReply{Message: text, SessionID: sessionID, Context: conversation}, nil
}

// record stores session metadata and announces flagged messages. Failures
// are logged and never change the reply.
func (s *ChatService) record(ctx context.Context, sessionID, userID string, flagged bool) {
	now := time.Now().UTC()

	if s.sessions != nil {
		session := travel.Session{
			SessionID:     sessionID,
			UserID:        userID,
			StartedAt:     now.Format(time.RFC3339),
			LastMessageAt: now.Format(time.RFC3339),
			Flagged:       flagged,
		}
		if _, err := s.sessions.Touch(ctx, session, s.rules.SessionTTL); err != nil {
			s.logger.Warn("Failed to record chat session", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	if flagged && s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewMessageFlagged(sessionID, userID, now)); err != nil {
			s.logger.Warn("Failed to publish flagged message event", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
}

func isRefusal(text string) bool {
	for _, marker := range refusalMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

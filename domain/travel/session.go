package travel

import "time"

// Session is the metadata kept for a chat conversation.
type Session struct {
	SessionID     string    `json:"session_id" dynamodbav:"session_id"`
	UserID        string    `json:"user_id,omitempty" dynamodbav:"user_id,omitempty"`
	StartedAt     string    `json:"started_at" dynamodbav:"started_at"`
	LastMessageAt string    `json:"last_message_at" dynamodbav:"last_message_at"`
	MessageCount  int       `json:"message_count" dynamodbav:"message_count"`
	Flagged       bool      `json:"flagged" dynamodbav:"flagged"`
	ExpiresAt     time.Time `json:"-" dynamodbav:"-"`
}

// ConversationContext is echoed back to the chat client with every reply.
type ConversationContext struct {
	Timestamp string      `json:"timestamp"`
	SessionID string      `json:"session_id"`
	User      ContextUser `json:"user"`
}

// ContextUser identifies the person chatting.
type ContextUser struct {
	ID string `json:"id"`
}

package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"travel-assistant/domain/travel"
)

// API is the subset of the DynamoDB client used by the session store
type API interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// sessionItem is how a chat session is laid out in the table.
// The table expires items through the ttl attribute.
type sessionItem struct {
	PK            string `dynamodbav:"PK"`     // SESSION#<session_id>
	SK            string `dynamodbav:"SK"`     // METADATA
	GSI1PK        string `dynamodbav:"GSI1PK"` // USER#<user_id>
	GSI1SK        string `dynamodbav:"GSI1SK"` // SESSION#<last_message_at>
	SessionID     string `dynamodbav:"session_id"`
	UserID        string `dynamodbav:"user_id"`
	StartedAt     string `dynamodbav:"started_at"`
	LastMessageAt string `dynamodbav:"last_message_at"`
	MessageCount  int    `dynamodbav:"message_count"`
	Flagged       bool   `dynamodbav:"flagged"`
	TTL           int64  `dynamodbav:"ttl"`
}

// SessionStore implements ports.SessionStore on a single DynamoDB table
type SessionStore struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// NewSessionStore creates a new DynamoDB session store
func NewSessionStore(client API, tableName string, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func sessionKey(sessionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "SESSION#" + sessionID},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

// Touch upserts the session in one UpdateItem call. started_at is only set on
// first write and a flagged session stays flagged.
func (s *SessionStore) Touch(ctx context.Context, session travel.Session, ttl time.Duration) (*travel.Session, error) {
	now := time.Now().UTC()
	lastMessage := session.LastMessageAt
	if lastMessage == "" {
		lastMessage = now.Format(time.RFC3339)
	}
	startedAt := session.StartedAt
	if startedAt == "" {
		startedAt = lastMessage
	}

	update := expression.
		Set(expression.Name("session_id"), expression.Value(session.SessionID)).
		Set(expression.Name("last_message_at"), expression.Value(lastMessage)).
		Set(expression.Name("ttl"), expression.Value(now.Add(ttl).Unix())).
		Set(expression.Name("started_at"), expression.IfNotExists(expression.Name("started_at"), expression.Value(startedAt))).
		Add(expression.Name("message_count"), expression.Value(1))

	if session.Flagged {
		update = update.Set(expression.Name("flagged"), expression.Value(true))
	} else {
		update = update.Set(expression.Name("flagged"), expression.IfNotExists(expression.Name("flagged"), expression.Value(false)))
	}
	if session.UserID != "" {
		update = update.
			Set(expression.Name("user_id"), expression.Value(session.UserID)).
			Set(expression.Name("GSI1PK"), expression.Value("USER#"+session.UserID)).
			Set(expression.Name("GSI1SK"), expression.Value("SESSION#"+lastMessage))
	}

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       sessionKey(session.SessionID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update session %s: %w", session.SessionID, err)
	}

	var item sessionItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	s.logger.Debug("Session touched",
		zap.String("session_id", item.SessionID),
		zap.Int("message_count", item.MessageCount),
	)

	return &travel.Session{
		SessionID:     item.SessionID,
		UserID:        item.UserID,
		StartedAt:     item.StartedAt,
		LastMessageAt: item.LastMessageAt,
		MessageCount:  item.MessageCount,
		Flagged:       item.Flagged,
		ExpiresAt:     time.Unix(item.TTL, 0).UTC(),
	}, nil
}

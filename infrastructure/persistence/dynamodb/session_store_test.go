package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-assistant/domain/travel"
)

type mockDynamoDB struct {
	mock.Mock
}

func (m *mockDynamoDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

// boundValues lists every value bound in the update expression.
func boundValues(in *dynamodb.UpdateItemInput) []types.AttributeValue {
	values := make([]types.AttributeValue, 0, len(in.ExpressionAttributeValues))
	for _, v := range in.ExpressionAttributeValues {
		values = append(values, v)
	}
	return values
}

func TestSessionStore_Touch(t *testing.T) {
	client := new(mockDynamoDB)
	stored, err := attributevalue.MarshalMap(sessionItem{
		PK:            "SESSION#s-1",
		SK:            "METADATA",
		SessionID:     "s-1",
		UserID:        "u-1",
		StartedAt:     "2025-06-01T10:00:00Z",
		LastMessageAt: "2025-06-01T10:05:00Z",
		MessageCount:  3,
		TTL:           1748858700,
	})
	require.NoError(t, err)

	var input *dynamodb.UpdateItemInput
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.UpdateItemInput) }).
		Return(&dynamodb.UpdateItemOutput{Attributes: stored}, nil)

	store := NewSessionStore(client, "sessions", zap.NewNop())
	session, err := store.Touch(context.Background(), travel.Session{
		SessionID:     "s-1",
		UserID:        "u-1",
		LastMessageAt: "2025-06-01T10:05:00Z",
	}, 24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "s-1", session.SessionID)
	assert.Equal(t, 3, session.MessageCount)
	assert.Equal(t, "2025-06-01T10:00:00Z", session.StartedAt)
	assert.Equal(t, int64(1748858700), session.ExpiresAt.Unix())

	assert.Equal(t, "sessions", aws.ToString(input.TableName))
	assert.Equal(t, types.ReturnValueAllNew, input.ReturnValues)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "SESSION#s-1"}, input.Key["PK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "METADATA"}, input.Key["SK"])

	names := make([]string, 0, len(input.ExpressionAttributeNames))
	for _, n := range input.ExpressionAttributeNames {
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{
		"session_id", "last_message_at", "ttl", "started_at", "message_count",
		"flagged", "user_id", "GSI1PK", "GSI1SK",
	}, names)
	assert.Contains(t, aws.ToString(input.UpdateExpression), "ADD")
	assert.Contains(t, aws.ToString(input.UpdateExpression), "if_not_exists")
	assert.Contains(t, boundValues(input), &types.AttributeValueMemberS{Value: "USER#u-1"})
}

func TestSessionStore_TouchAnonymous(t *testing.T) {
	client := new(mockDynamoDB)
	stored, err := attributevalue.MarshalMap(sessionItem{SessionID: "s-2", MessageCount: 1, Flagged: true})
	require.NoError(t, err)

	var input *dynamodb.UpdateItemInput
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.UpdateItemInput) }).
		Return(&dynamodb.UpdateItemOutput{Attributes: stored}, nil)

	session, err := NewSessionStore(client, "sessions", zap.NewNop()).
		Touch(context.Background(), travel.Session{SessionID: "s-2", Flagged: true}, time.Hour)

	require.NoError(t, err)
	assert.True(t, session.Flagged)
	for _, n := range input.ExpressionAttributeNames {
		assert.NotEqual(t, "GSI1PK", n)
		assert.NotEqual(t, "user_id", n)
	}
	assert.Contains(t, boundValues(input), &types.AttributeValueMemberBOOL{Value: true})
	assert.NotContains(t, boundValues(input), &types.AttributeValueMemberBOOL{Value: false})
}

func TestSessionStore_TouchFailure(t *testing.T) {
	client := new(mockDynamoDB)
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, errors.New("ResourceNotFoundException"))

	_, err := NewSessionStore(client, "sessions", zap.NewNop()).
		Touch(context.Background(), travel.Session{SessionID: "s-3"}, time.Hour)

	assert.ErrorContains(t, err, "failed to update session s-3")
}

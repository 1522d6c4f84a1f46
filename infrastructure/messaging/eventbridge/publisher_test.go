package eventbridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-assistant/domain/events"
)

type mockEventBridge struct {
	mock.Mock
}

func (m *mockEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}

func TestPublish(t *testing.T) {
	client := new(mockEventBridge)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := events.NewBookingConfirmed("b-1", "hotel", "u-1", "HTL-B1", 370, "USD", ts)

	var input *eventbridge.PutEventsInput
	client.On("PutEvents", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*eventbridge.PutEventsInput) }).
		Return(&eventbridge.PutEventsOutput{}, nil)

	publisher := NewEventBridgePublisher(client, "travel-bus", zap.NewNop())
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, input.Entries, 1)
	entry := input.Entries[0]
	assert.Equal(t, "travel-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, "BookingConfirmed", aws.ToString(entry.DetailType))
	assert.Equal(t, ts, aws.ToTime(entry.Time))
	assert.Contains(t, aws.ToString(entry.Detail), `"booking_id":"b-1"`)
	assert.Contains(t, aws.ToString(entry.Detail), `"total_amount":370`)
}

func TestPublish_Failures(t *testing.T) {
	event := events.NewMessageFlagged("s-1", "", time.Now())

	t.Run("client error", func(t *testing.T) {
		client := new(mockEventBridge)
		client.On("PutEvents", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		err := NewEventBridgePublisher(client, "bus", zap.NewNop()).Publish(context.Background(), event)
		assert.ErrorContains(t, err, "throttled")
	})

	t.Run("failed entries", func(t *testing.T) {
		client := new(mockEventBridge)
		client.On("PutEvents", mock.Anything, mock.Anything).Return(&eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
		}, nil)

		err := NewEventBridgePublisher(client, "bus", zap.NewNop()).Publish(context.Background(), event)
		assert.EqualError(t, err, "1 events failed to publish")
	})
}

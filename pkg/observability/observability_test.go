package observability

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCloudWatch struct {
	mock.Mock
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatch.PutMetricDataOutput)
	return out, args.Error(1)
}

func TestMetrics_RecordOperation(t *testing.T) {
	client := new(mockCloudWatch)
	var captured *cloudwatch.PutMetricDataInput
	client.On("PutMetricData", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*cloudwatch.PutMetricDataInput) }).
		Return(&cloudwatch.PutMetricDataOutput{}, nil)

	m := NewMetrics("TravelAssistant", client, zap.NewNop())
	m.RecordOperation(context.Background(), "CreateBooking", 120*time.Millisecond, http.StatusBadRequest)

	require.NotNil(t, captured)
	assert.Equal(t, "TravelAssistant", *captured.Namespace)
	require.Len(t, captured.MetricData, 3)
	assert.Equal(t, "OperationLatency", *captured.MetricData[0].MetricName)
	assert.Equal(t, 120.0, *captured.MetricData[0].Value)
	assert.Equal(t, "Errors", *captured.MetricData[2].MetricName)
}

func TestMetrics_SuccessSkipsErrorMetric(t *testing.T) {
	client := new(mockCloudWatch)
	client.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
		return len(in.MetricData) == 2
	})).Return(nil, errors.New("throttled"))

	m := NewMetrics("TravelAssistant", client, zap.NewNop())
	m.RecordOperation(context.Background(), "Chat", time.Millisecond, http.StatusOK)

	client.AssertExpectations(t)
}

func TestMetrics_DisabledIsNoop(t *testing.T) {
	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.RecordOperation(context.Background(), "Chat", time.Second, http.StatusOK)
		NewMetrics("ns", nil, zap.NewNop()).RecordBooking(context.Background(), "hotel", 10)
	})
}

func TestTracer_DisabledRunsFunction(t *testing.T) {
	tracer := NewTracer("travel-assistant", false)
	wantErr := errors.New("boom")

	calls := 0
	err := tracer.TraceFunction(context.Background(), "bedrock.invoke", func(context.Context) error {
		calls++
		return wantErr
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, tracer.Enabled())
}

func TestTracer_EnabledWithoutSegmentRunsFunction(t *testing.T) {
	tracer := NewTracer("travel-assistant", true)

	calls := 0
	err := tracer.TraceFunction(context.Background(), "s3.put", func(context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

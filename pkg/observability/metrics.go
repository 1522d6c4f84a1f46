package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// MetricsAPI is the part of the CloudWatch client used for publishing.
type MetricsAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics and monitoring
type Metrics struct {
	namespace string
	client    MetricsAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance. A nil client disables publishing.
func NewMetrics(namespace string, client MetricsAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordOperation records latency and outcome for one served request
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, status int) {
	if m == nil || m.client == nil {
		return
	}

	outcome := "success"
	if status >= 400 {
		outcome = "failure"
	}
	dimensions := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
		{Name: aws.String("Status"), Value: aws.String(outcome)},
	}
	now := aws.Time(time.Now())

	data := []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  now,
		},
		{
			MetricName: aws.String("OperationCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  now,
		},
	}
	if status >= 400 {
		data = append(data, types.MetricDatum{
			MetricName: aws.String("Errors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(operation)},
				{Name: aws.String("StatusCode"), Value: aws.String(strconv.Itoa(status))},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: now,
		})
	}

	m.put(ctx, data)
}

// RecordBooking records the amount of a confirmed booking
func (m *Metrics) RecordBooking(ctx context.Context, bookingType string, amount float64) {
	if m == nil || m.client == nil {
		return
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("BookingAmount"),
			Dimensions: []types.Dimension{
				{Name: aws.String("BookingType"), Value: aws.String(bookingType)},
			},
			Value:     aws.Float64(amount),
			Unit:      types.StandardUnitNone,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	// Metrics never fail the request.
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}

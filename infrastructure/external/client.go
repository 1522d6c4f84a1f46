package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
)

// maxErrorBody caps how much of a failed response is logged
const maxErrorBody = 512

// BreakerConfig holds circuit breaker settings shared by every external system
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the settings used when none are configured
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// StatusError is returned when an external system answers with a non-200 status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// client is a JSON-over-HTTP client for one external system. Every call goes
// through the system's circuit breaker; only transport failures and 5xx
// responses count against it.
type client struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

func newClient(name, baseURL, apiKey string, timeout time.Duration, breaker BreakerConfig, tracer *observability.Tracer, logger *zap.Logger) *client {
	httpClient := &http.Client{Timeout: timeout}
	if tracer.Enabled() {
		httpClient = xray.Client(httpClient)
	}

	return &client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		breaker:    newBreaker(name, breaker, logger),
		logger:     logger.With(zap.String("system", name)),
	}
}

func newBreaker(name string, cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if se, ok := err.(*StatusError); ok {
				return se.StatusCode < http.StatusInternalServerError
			}
			return false
		},
	})
}

// do sends payload (when non-nil) and decodes a JSON object reply. A
// rejected call on an open breaker is an unavailable AppError.
func (c *client) do(ctx context.Context, method, path string, payload interface{}) (travel.Record, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, method, path, payload)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("External call rejected by circuit breaker", zap.String("path", path))
		return nil, apperrors.NewUnavailableError(c.name).WithCause(err)
	}
	if err != nil {
		c.logger.Error("External call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	return result.(travel.Record), nil
}

func (c *client) roundTrip(ctx context.Context, method, path string, payload interface{}) (travel.Record, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("External system returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(text)),
		)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	record := travel.Record{}
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return record, nil
}

// describe renders err for an error record, preferring the AppError message
func describe(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

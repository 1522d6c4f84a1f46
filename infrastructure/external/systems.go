package external

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/travel"
	"travel-assistant/pkg/observability"
)

// AvailabilityClient implements ports.AvailabilitySystem over HTTP
type AvailabilityClient struct {
	c *client
}

// NewAvailabilityClient creates a client for the partner availability API
func NewAvailabilityClient(baseURL, apiKey string, timeout time.Duration, breaker BreakerConfig, tracer *observability.Tracer, logger *zap.Logger) *AvailabilityClient {
	return &AvailabilityClient{c: newClient("availability", baseURL, apiKey, timeout, breaker, tracer, logger)}
}

// Check posts {type, params} to /check
func (a *AvailabilityClient) Check(ctx context.Context, kind string, params travel.Record) travel.Record {
	result, err := a.c.do(ctx, http.MethodPost, "/check", map[string]interface{}{
		"type":   kind,
		"params": params,
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return travel.AvailabilityError(fmt.Sprintf("Availability system returned error: %d", se.StatusCode))
		}
		return travel.AvailabilityError("Error calling availability system: " + describe(err))
	}
	return result
}

// BookingClient implements ports.BookingSystem over HTTP
type BookingClient struct {
	c *client
}

// NewBookingClient creates a client for the partner booking API
func NewBookingClient(baseURL, apiKey string, timeout time.Duration, breaker BreakerConfig, tracer *observability.Tracer, logger *zap.Logger) *BookingClient {
	return &BookingClient{c: newClient("booking", baseURL, apiKey, timeout, breaker, tracer, logger)}
}

// Book posts {type, details} to /book
func (b *BookingClient) Book(ctx context.Context, kind string, details travel.Record) travel.Record {
	result, err := b.c.do(ctx, http.MethodPost, "/book", map[string]interface{}{
		"type":    kind,
		"details": details,
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return travel.BookingError(fmt.Sprintf("Booking system returned error: %d", se.StatusCode))
		}
		return travel.BookingError("Error calling booking system: " + describe(err))
	}
	return result
}

// LoyaltyClient implements ports.LoyaltySystem over HTTP
type LoyaltyClient struct {
	c *client
}

// NewLoyaltyClient creates a client for the loyalty programme API
func NewLoyaltyClient(baseURL, apiKey string, timeout time.Duration, breaker BreakerConfig, tracer *observability.Tracer, logger *zap.Logger) *LoyaltyClient {
	return &LoyaltyClient{c: newClient("loyalty", baseURL, apiKey, timeout, breaker, tracer, logger)}
}

// Status reads the member record, or returns an empty record on any failure
func (l *LoyaltyClient) Status(ctx context.Context, userID string) travel.Record {
	result, err := l.c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/loyalty", nil)
	if err != nil {
		return travel.Record{}
	}
	return result
}

// AddPoints credits points for a booking
func (l *LoyaltyClient) AddPoints(ctx context.Context, award ports.PointsAward) error {
	if _, err := l.c.do(ctx, http.MethodPost, "/points/add", award); err != nil {
		return fmt.Errorf("failed to add loyalty points: %w", err)
	}
	return nil
}

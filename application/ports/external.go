package ports

import (
	"context"

	"travel-assistant/domain/events"
	"travel-assistant/domain/travel"
)

// AvailabilitySystem checks inventory with an external provider.
// Failures come back as travel.AvailabilityError records, never as Go errors.
type AvailabilitySystem interface {
	Check(ctx context.Context, kind string, params travel.Record) travel.Record
}

// BookingSystem reserves inventory with an external provider.
// Failures come back as travel.BookingError records.
type BookingSystem interface {
	Book(ctx context.Context, kind string, details travel.Record) travel.Record
}

// PointsAward is a loyalty credit for a completed booking.
type PointsAward struct {
	UserID   string  `json:"user_id"`
	Points   int     `json:"points"`
	Activity string  `json:"activity"`
	Amount   float64 `json:"amount"`
}

// LoyaltySystem reads and credits loyalty programme accounts.
type LoyaltySystem interface {
	// Status returns the member's loyalty record, or an empty record on any failure
	Status(ctx context.Context, userID string) travel.Record

	AddPoints(ctx context.Context, award PointsAward) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

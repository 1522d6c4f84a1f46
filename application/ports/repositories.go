package ports

import (
	"context"
	"time"

	"travel-assistant/domain/travel"
)

// BookingStore defines the interface for booking persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type BookingStore interface {
	// Save persists a booking document under its booking ID
	Save(ctx context.Context, booking travel.Booking) error

	// Get retrieves a booking by its ID; a missing booking is a not-found AppError
	Get(ctx context.Context, bookingID string) (*travel.Booking, error)

	// ListByUser retrieves every stored booking whose user_info.id matches
	ListByUser(ctx context.Context, userID string) ([]travel.Booking, error)
}

// SessionStore records chat session metadata
type SessionStore interface {
	// Touch creates the session if needed, bumps its message count and
	// extends its expiry by ttl. The stored session is returned.
	Touch(ctx context.Context, session travel.Session, ttl time.Duration) (*travel.Session, error)
}

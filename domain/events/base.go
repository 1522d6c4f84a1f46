package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Booking Events

// BookingConfirmed is raised once a booking has been stored
type BookingConfirmed struct {
	BaseEvent
	BookingID        string  `json:"booking_id"`
	BookingType      string  `json:"booking_type"`
	UserID           string  `json:"user_id,omitempty"`
	ConfirmationCode string  `json:"confirmation_code,omitempty"`
	TotalAmount      float64 `json:"total_amount"`
	Currency         string  `json:"currency,omitempty"`
}

// NewBookingConfirmed creates a BookingConfirmed event
func NewBookingConfirmed(bookingID, bookingType, userID, confirmationCode string, totalAmount float64, currency string, timestamp time.Time) BookingConfirmed {
	return BookingConfirmed{
		BaseEvent: BaseEvent{
			AggregateID: bookingID,
			EventType:   "BookingConfirmed",
			Timestamp:   timestamp,
			Version:     1,
		},
		BookingID:        bookingID,
		BookingType:      bookingType,
		UserID:           userID,
		ConfirmationCode: confirmationCode,
		TotalAmount:      totalAmount,
		Currency:         currency,
	}
}

// Chat Events

// MessageFlagged is raised when the guardrails agent refuses a chat message
type MessageFlagged struct {
	BaseEvent
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
}

// NewMessageFlagged creates a MessageFlagged event
func NewMessageFlagged(sessionID, userID string, timestamp time.Time) MessageFlagged {
	return MessageFlagged{
		BaseEvent: BaseEvent{
			AggregateID: sessionID,
			EventType:   "MessageFlagged",
			Timestamp:   timestamp,
			Version:     1,
		},
		SessionID: sessionID,
		UserID:    userID,
	}
}

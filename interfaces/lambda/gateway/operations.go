package gateway

import (
	"travel-assistant/infrastructure/di"
)

// Operation names, used for logging and metrics.
const (
	OpGenerateIdeas         = "GenerateIdeas"
	OpCheckAvailability     = "CheckAvailability"
	OpCreateBooking         = "CreateBooking"
	OpAnswerBookingQuestion = "AnswerBookingQuestion"
	OpChat                  = "Chat"
)

func newHandler(c *di.Container, name string, op Operation, opts ...Option) *Handler {
	opts = append([]Option{WithTracer(c.Tracer)}, opts...)
	return NewHandler(name, op, c.ErrorHandler, c.Metrics, c.Logger, opts...)
}

// NewIdeationHandler serves GenerateIdeas.
func NewIdeationHandler(c *di.Container) *Handler {
	return newHandler(c, OpGenerateIdeas, Bind(c.Ideation.GenerateIdeas))
}

// NewAvailabilityHandler serves CheckAvailability.
func NewAvailabilityHandler(c *di.Container) *Handler {
	return newHandler(c, OpCheckAvailability, Bind(c.Availability.CheckAvailability))
}

// NewBookingHandler serves CreateBooking.
func NewBookingHandler(c *di.Container) *Handler {
	return newHandler(c, OpCreateBooking, Bind(c.Booking.CreateBooking))
}

// NewBookingQAHandler serves AnswerBookingQuestion.
func NewBookingQAHandler(c *di.Container) *Handler {
	return newHandler(c, OpAnswerBookingQuestion, Bind(c.BookingQA.AnswerBookingQuestion))
}

// NewChatHandler serves Chat. Chat is only reachable through API Gateway.
func NewChatHandler(c *di.Container) *Handler {
	return newHandler(c, OpChat, Bind(c.Chat.Chat), EnvelopeOnly())
}

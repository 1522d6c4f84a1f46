package di

import (
	"go.uber.org/zap"

	"travel-assistant/application/services"
	"travel-assistant/infrastructure/config"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
	ErrorHandler *apperrors.ErrorHandler

	Ideation     *services.IdeationService
	Availability *services.AvailabilityService
	Booking      *services.BookingService
	BookingQA    *services.BookingQAService
	Chat         *services.ChatService
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/config"
	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/utils"
)

const (
	answerNotFound = "I could not find any booking information with the provided details."
	answerFailed   = "I apologize, but I encountered an error while retrieving your booking information."
)

// BookingQuestionRequest asks about one booking or all of a user's bookings.
type BookingQuestionRequest struct {
	Query     string `json:"query" validate:"required"`
	UserID    string `json:"user_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

// BookingAnswer is the generated answer.
type BookingAnswer struct {
	Query          string `json:"query"`
	Answer         string `json:"answer"`
	BookingCount   int    `json:"booking_count"`
	HasBookingData bool   `json:"has_booking_data"`
	Timestamp      string `json:"timestamp"`
}

// BookingQAService answers questions about stored bookings.
type BookingQAService struct {
	store     ports.BookingStore
	generator ports.TextGenerator
	rules     *config.DomainConfig
	modelID   string
	logger    *zap.Logger
}

// NewBookingQAService creates a new booking question service
func NewBookingQAService(
	store ports.BookingStore,
	generator ports.TextGenerator,
	rules *config.DomainConfig,
	modelID string,
	logger *zap.Logger,
) *BookingQAService {
	return &BookingQAService{
		store:     store,
		generator: generator,
		rules:     rules,
		modelID:   modelID,
		logger:    logger,
	}
}

// AnswerBookingQuestion looks up the relevant bookings and answers the query from them.
// A booking ID takes precedence over a user ID.
func (s *BookingQAService) AnswerBookingQuestion(ctx context.Context, req BookingQuestionRequest) (*BookingAnswer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.UserID == "" && req.BookingID == "" {
		return nil, apperrors.NewMissingParameterError("either user_id or booking_id must be provided")
	}

	bookings, err := s.lookup(ctx, req)
	if err != nil {
		return nil, failedAnswer(err)
	}
	if len(bookings) == 0 {
		return nil, apperrors.NewNotFoundError("No booking data found").
			WithDetails(map[string]interface{}{"answer": answerNotFound})
	}

	prompt := qaPrompt(req.Query, formatBookingContext(bookings))

	s.logger.Info("Generating booking answer",
		zap.String("model_id", s.modelID),
		zap.Int("bookings", len(bookings)),
	)
	answer, err := s.generator.Generate(ctx, prompt, ports.GenerationOptions{
		ModelID:     s.modelID,
		MaxTokens:   s.rules.QAMaxTokens,
		Temperature: s.rules.QATemperature,
	})
	if err != nil {
		return nil, failedAnswer(err)
	}

	return &BookingAnswer{
		Query:          req.Query,
		Answer:         answer,
		BookingCount:   len(bookings),
		HasBookingData: true,
		Timestamp:      utils.NowRFC3339(),
	}, nil
}

func (s *BookingQAService) lookup(ctx context.Context, req BookingQuestionRequest) ([]travel.Booking, error) {
	if req.BookingID != "" {
		booking, err := s.store.Get(ctx, req.BookingID)
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get booking %s: %w", req.BookingID, err)
		}
		return []travel.Booking{*booking}, nil
	}

	bookings, err := s.store.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", req.UserID, err)
	}
	return bookings, nil
}

func failedAnswer(err error) *apperrors.AppError {
	return apperrors.NewInternalError(err).
		WithDetails(map[string]interface{}{"answer": answerFailed})
}

package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"travel-assistant/application/services"
	"travel-assistant/pkg/common"
	apperrors "travel-assistant/pkg/errors"
)

// IdeaGenerator produces trip ideas.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, req services.IdeationRequest) (*services.IdeationResult, error)
}

// AvailabilityChecker looks up availability.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, req services.AvailabilityRequest) (*services.AvailabilityResult, error)
}

// BookingCreator reserves travel.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req services.BookingRequest) (*services.BookingResult, error)
}

// BookingQuestionAnswerer answers questions about stored bookings.
type BookingQuestionAnswerer interface {
	AnswerBookingQuestion(ctx context.Context, req services.BookingQuestionRequest) (*services.BookingAnswer, error)
}

// ChatResponder replies to chat messages.
type ChatResponder interface {
	Chat(ctx context.Context, req services.ChatRequest) (*services.ChatReply, error)
}

// TravelHandler handles the travel assistant HTTP API
type TravelHandler struct {
	ideas        IdeaGenerator
	availability AvailabilityChecker
	booking      BookingCreator
	bookingQA    BookingQuestionAnswerer
	chat         ChatResponder
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(
	ideas IdeaGenerator,
	availability AvailabilityChecker,
	booking BookingCreator,
	bookingQA BookingQuestionAnswerer,
	chat ChatResponder,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *TravelHandler {
	return &TravelHandler{
		ideas:        ideas,
		availability: availability,
		booking:      booking,
		bookingQA:    bookingQA,
		chat:         chat,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GenerateIdeas handles POST /ideas
func (h *TravelHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.ideas.GenerateIdeas)
}

// CheckAvailability handles POST /availability
func (h *TravelHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.availability.CheckAvailability)
}

// CreateBooking handles POST /bookings
func (h *TravelHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.booking.CreateBooking)
}

// AnswerBookingQuestion handles POST /bookings/questions
func (h *TravelHandler) AnswerBookingQuestion(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.bookingQA.AnswerBookingQuestion)
}

// Chat handles POST /chat
func (h *TravelHandler) Chat(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.chat.Chat)
}

// serve decodes the request body, runs the operation and writes the result.
// An empty body decodes to the zero request.
func serve[Req any, Res any](h *TravelHandler, w http.ResponseWriter, r *http.Request, op func(context.Context, Req) (Res, error)) {
	var req Req
	if err := common.ParseJSONBody(r, &req, common.MaxBodyBytes); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid JSON body").WithCause(err))
		return
	}

	result, err := op(r.Context(), req)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

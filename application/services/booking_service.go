package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/config"
	"travel-assistant/domain/events"
	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
	"travel-assistant/pkg/utils"
)

// BookingRequest asks to reserve a flight, hotel, activity or package.
type BookingRequest struct {
	Type        string        `json:"type" validate:"required"`
	Details     travel.Record `json:"details" validate:"required,min=1"`
	UserInfo    travel.Record `json:"user_info" validate:"required,min=1"`
	PaymentInfo travel.Record `json:"payment_info,omitempty"`
}

// BookingResult is returned once a booking is confirmed and stored.
type BookingResult struct {
	BookingID    string        `json:"booking_id"`
	Status       string        `json:"status"`
	Timestamp    string        `json:"timestamp"`
	Confirmation travel.Record `json:"confirmation"`
}

// BookingService reserves travel and records confirmed bookings.
type BookingService struct {
	store        ports.BookingStore
	external     ports.BookingSystem
	loyalty      ports.LoyaltySystem
	publisher    ports.EventPublisher
	reservations *Reservations
	rules        *config.DomainConfig
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewBookingService creates a new booking service. When external is nil,
// bookings are confirmed by the simulated reservations desk. loyalty and
// publisher may be nil.
func NewBookingService(
	store ports.BookingStore,
	external ports.BookingSystem,
	loyalty ports.LoyaltySystem,
	publisher ports.EventPublisher,
	reservations *Reservations,
	rules *config.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:        store,
		external:     external,
		loyalty:      loyalty,
		publisher:    publisher,
		reservations: reservations,
		rules:        rules,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateBooking reserves the requested travel, stores the booking and credits loyalty points
func (s *BookingService) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	kind := strings.ToLower(req.Type)
	if !travel.Supported(kind) {
		return nil, apperrors.NewValidationError("Unsupported booking type: " + req.Type)
	}

	bookingID := uuid.NewString()
	logger := s.logger.With(zap.String("booking_id", bookingID), zap.String("type", kind))

	confirmation := s.book(ctx, kind, bookingID, req.Details, req.UserInfo, req.PaymentInfo)
	if msg, failed := confirmation.ErrorMessage(); failed {
		logger.Warn("Booking rejected", zap.String("reason", msg))
		return nil, apperrors.NewValidationError(msg).WithDetails(confirmation)
	}

	status := confirmation.String("status")
	if status == "" {
		status = travel.StatusConfirmed
	}

	booking := travel.Booking{
		BookingID:    bookingID,
		BookingType:  req.Type,
		Details:      req.Details,
		UserInfo:     req.UserInfo,
		Timestamp:    utils.NowRFC3339(),
		Status:       status,
		Confirmation: confirmation,
	}
	// A failed save is logged only; the reservation already exists.
	if err := s.store.Save(ctx, booking); err != nil {
		logger.Error("Failed to save booking", zap.Error(err))
	}

	amount := confirmation.Number("total_amount")
	s.metrics.RecordBooking(ctx, kind, amount)
	s.publishConfirmed(ctx, booking, amount)
	s.awardPoints(ctx, booking, amount)

	logger.Info("Booking confirmed")

	return &BookingResult{
		BookingID:    bookingID,
		Status:       status,
		Timestamp:    utils.NowRFC3339(),
		Confirmation: confirmation,
	}, nil
}

func (s *BookingService) book(ctx context.Context, kind, bookingID string, details, userInfo, payment travel.Record) travel.Record {
	switch kind {
	case travel.TypeFlight:
		return s.bookFlight(ctx, bookingID, details, userInfo, payment)
	case travel.TypeHotel:
		return s.bookHotel(ctx, bookingID, details, userInfo, payment)
	case travel.TypeActivity:
		return s.bookActivity(ctx, bookingID, details, userInfo, payment)
	default:
		return s.bookPackage(ctx, bookingID, details, userInfo, payment)
	}
}

func (s *BookingService) bookFlight(ctx context.Context, bookingID string, details, userInfo, payment travel.Record) travel.Record {
	if details.String("flight_id") == "" {
		return travel.BookingError("Missing required parameter: flight_id")
	}
	if len(details.List("passengers")) == 0 {
		return travel.BookingError("Missing required parameter: passengers")
	}

	if s.external != nil {
		return s.external.Book(ctx, travel.TypeFlight, travel.Record{
			"booking_id":   bookingID,
			"flight_id":    details["flight_id"],
			"passengers":   details["passengers"],
			"user_info":    userInfo,
			"payment_info": payment,
		})
	}
	return s.reservations.Flight(bookingID, details)
}

func (s *BookingService) bookHotel(ctx context.Context, bookingID string, details, userInfo, payment travel.Record) travel.Record {
	if !hasAll(details, "hotel_id", "room_type", "check_in", "check_out") {
		return travel.BookingError("Missing required hotel parameters")
	}
	if len(details.List("guests")) == 0 {
		return travel.BookingError("Missing required parameter: guests")
	}

	if s.external != nil {
		return s.external.Book(ctx, travel.TypeHotel, travel.Record{
			"booking_id":   bookingID,
			"hotel_id":     details["hotel_id"],
			"room_type":    details["room_type"],
			"check_in":     details["check_in"],
			"check_out":    details["check_out"],
			"guests":       details["guests"],
			"user_info":    userInfo,
			"payment_info": payment,
		})
	}
	return s.reservations.Hotel(bookingID, details)
}

func (s *BookingService) bookActivity(ctx context.Context, bookingID string, details, userInfo, payment travel.Record) travel.Record {
	if !hasAll(details, "activity_id", "date", "time_slot") {
		return travel.BookingError("Missing required activity parameters")
	}
	if len(details.List("participants")) == 0 {
		return travel.BookingError("Missing required parameter: participants")
	}

	if s.external != nil {
		return s.external.Book(ctx, travel.TypeActivity, travel.Record{
			"booking_id":   bookingID,
			"activity_id":  details["activity_id"],
			"date":         details["date"],
			"time_slot":    details["time_slot"],
			"participants": details["participants"],
			"user_info":    userInfo,
			"payment_info": payment,
		})
	}
	return s.reservations.Activity(bookingID, details)
}

// bookPackage books every component present in details. Any component
// failure fails the whole package with one combined message.
func (s *BookingService) bookPackage(ctx context.Context, bookingID string, details, userInfo, payment travel.Record) travel.Record {
	flight := travel.Record{}
	if d := details.Record("flight"); len(d) > 0 {
		flight = s.bookFlight(ctx, bookingID+"-flight", d, userInfo, payment)
	}
	hotel := travel.Record{}
	if d := details.Record("hotel"); len(d) > 0 {
		hotel = s.bookHotel(ctx, bookingID+"-hotel", d, userInfo, payment)
	}

	activities := make([]travel.Record, 0)
	for i, d := range details.Records("activities") {
		activities = append(activities, s.bookActivity(ctx, fmt.Sprintf("%s-activity-%d", bookingID, i+1), d, userInfo, payment))
	}

	var failures []string
	if msg, failed := flight.ErrorMessage(); failed {
		failures = append(failures, "Flight: "+msg)
	}
	if msg, failed := hotel.ErrorMessage(); failed {
		failures = append(failures, "Hotel: "+msg)
	}
	for i, a := range activities {
		if msg, failed := a.ErrorMessage(); failed {
			failures = append(failures, fmt.Sprintf("Activity %d: %s", i+1, msg))
		}
	}
	if len(failures) > 0 {
		return travel.BookingError("Package booking failed: " + strings.Join(failures, "; "))
	}

	total := flight.Number("total_amount") + hotel.Number("total_amount")
	for _, a := range activities {
		total += a.Number("total_amount")
	}

	return travel.Record{
		"booking_id":        bookingID,
		"status":            travel.StatusConfirmed,
		"flight":            flight,
		"hotel":             hotel,
		"activities":        activities,
		"total_amount":      total,
		"currency":          s.rules.Currency,
		"booking_date":      utils.NowRFC3339(),
		"confirmation_code": travel.ConfirmationCode("PKG", bookingID),
	}
}

func (s *BookingService) publishConfirmed(ctx context.Context, b travel.Booking, amount float64) {
	if s.publisher == nil {
		return
	}

	event := events.NewBookingConfirmed(
		b.BookingID,
		strings.ToLower(b.BookingType),
		b.UserID(),
		b.Confirmation.String("confirmation_code"),
		amount,
		b.Confirmation.StringOr("currency", s.rules.Currency),
		time.Now().UTC(),
	)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("booking_id", b.BookingID),
			zap.Error(err),
		)
	}
}

func (s *BookingService) awardPoints(ctx context.Context, b travel.Booking, amount float64) {
	userID := b.UserID()
	if userID == "" || s.loyalty == nil {
		return
	}

	award := ports.PointsAward{
		UserID:   userID,
		Points:   s.rules.LoyaltyPoints(b.BookingType, amount),
		Activity: capitalize(b.BookingType) + " Booking",
		Amount:   amount,
	}
	if err := s.loyalty.AddPoints(ctx, award); err != nil {
		s.logger.Warn("Failed to add loyalty points",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Added loyalty points", zap.String("user_id", userID), zap.Int("points", award.Points))
}

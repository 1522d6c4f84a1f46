package services

import (
	"strconv"
	"strings"

	"travel-assistant/domain/config"
	"travel-assistant/domain/travel"
	"travel-assistant/pkg/utils"
)

// Reservations confirms bookings locally when no external booking system
// is configured. Inventory IDs encode what is being booked:
//
//	flight:   AIRLINE-FLIGHTNUM-DATE-CLASS
//	hotel:    HOTEL-LOCATION-STARS
//	activity: NAME-TYPE-LOCATION
type Reservations struct {
	rules *config.DomainConfig
}

// NewReservations creates a simulated booking desk priced by rules
func NewReservations(rules *config.DomainConfig) *Reservations {
	return &Reservations{rules: rules}
}

// Flight confirms a flight for every passenger listed in details.
func (r *Reservations) Flight(bookingID string, details travel.Record) travel.Record {
	parts := strings.Split(details.String("flight_id"), "-")
	if len(parts) < 4 {
		return travel.BookingError("Invalid flight ID format")
	}
	cabin := parts[3]
	passengers := len(details.List("passengers"))

	return travel.Record{
		"booking_id":        bookingID,
		"status":            travel.StatusConfirmed,
		"airline":           parts[0],
		"flight_number":     parts[1],
		"departure_date":    parts[2],
		"cabin_class":       cabin,
		"passengers":        passengers,
		"passenger_names":   details.Names("passengers"),
		"total_amount":      r.rules.FlightFare(cabin) * float64(passengers),
		"currency":          r.rules.Currency,
		"booking_date":      utils.NowRFC3339(),
		"confirmation_code": travel.ConfirmationCode("AIR", bookingID),
	}
}

// Hotel confirms a room for the nights between check-in and check-out.
func (r *Reservations) Hotel(bookingID string, details travel.Record) travel.Record {
	checkIn := details.String("check_in")
	checkOut := details.String("check_out")

	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return travel.BookingError(invalidDateMessage)
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return travel.BookingError(invalidDateMessage)
	}
	nights := utils.NightsBetween(in, out)
	if nights <= 0 {
		return travel.BookingError("Check-out date must be after check-in date")
	}

	parts := strings.Split(details.String("hotel_id"), "-")
	if len(parts) < 3 {
		return travel.BookingError("Invalid hotel ID format")
	}
	stars := r.rules.DefaultHotelStars
	if n, err := strconv.Atoi(parts[2]); err == nil && n >= 0 {
		stars = n
	}

	roomType := details.String("room_type")
	guests := len(details.List("guests"))

	return travel.Record{
		"booking_id":        bookingID,
		"status":            travel.StatusConfirmed,
		"hotel_name":        parts[0],
		"location":          parts[1],
		"stars":             stars,
		"room_type":         roomType,
		"check_in":          checkIn,
		"check_out":         checkOut,
		"nights":            nights,
		"guests":            guests,
		"guest_names":       details.Names("guests"),
		"total_amount":      r.rules.NightlyRate(stars, roomType) * float64(nights),
		"currency":          r.rules.Currency,
		"booking_date":      utils.NowRFC3339(),
		"confirmation_code": travel.ConfirmationCode("HTL", bookingID),
	}
}

// Activity confirms places for every participant listed in details.
func (r *Reservations) Activity(bookingID string, details travel.Record) travel.Record {
	parts := strings.Split(details.String("activity_id"), "-")
	if len(parts) < 3 {
		return travel.BookingError("Invalid activity ID format")
	}
	activityType := parts[1]
	participants := len(details.List("participants"))

	return travel.Record{
		"booking_id":        bookingID,
		"status":            travel.StatusConfirmed,
		"activity_name":     parts[0],
		"activity_type":     activityType,
		"location":          parts[2],
		"date":              details.String("date"),
		"time_slot":         details.String("time_slot"),
		"participants":      participants,
		"participant_names": details.Names("participants"),
		"total_amount":      r.rules.ActivityPrice(activityType) * float64(participants),
		"currency":          r.rules.Currency,
		"booking_date":      utils.NowRFC3339(),
		"confirmation_code": travel.ConfirmationCode("ACT", bookingID),
	}
}

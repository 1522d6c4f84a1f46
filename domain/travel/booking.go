package travel

import (
	"fmt"
	"strings"
)

// Booking and search kinds.
const (
	TypeFlight   = "flight"
	TypeHotel    = "hotel"
	TypeActivity = "activity"
	TypePackage  = "package"
)

// StatusConfirmed is the status given to a booking whose confirmation carries none.
const StatusConfirmed = "confirmed"

// Supported reports whether kind (case-insensitive) is a known search or booking type.
func Supported(kind string) bool {
	switch strings.ToLower(kind) {
	case TypeFlight, TypeHotel, TypeActivity, TypePackage:
		return true
	}
	return false
}

// ConfirmationCode builds the code shown to travellers, e.g. AIR-1A2B3C4D.
func ConfirmationCode(prefix, bookingID string) string {
	id := bookingID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(id))
}

// Booking is the document stored for each confirmed booking.
type Booking struct {
	BookingID    string `json:"booking_id"`
	BookingType  string `json:"booking_type"`
	Details      Record `json:"details"`
	UserInfo     Record `json:"user_info"`
	Timestamp    string `json:"timestamp"`
	Status       string `json:"status"`
	Confirmation Record `json:"confirmation"`
}

// UserID returns the owner recorded in user_info.id.
func (b Booking) UserID() string {
	return b.UserInfo.String("id")
}

// BelongsTo reports whether the booking was made by userID.
func (b Booking) BelongsTo(userID string) bool {
	return userID != "" && b.UserID() == userID
}

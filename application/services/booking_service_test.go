package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-assistant/application/ports"
	"travel-assistant/domain/events"
	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
)

var confirmationPattern = regexp.MustCompile(`^[A-Z]{3}-[0-9A-F]{8}$`)

type bookingFixture struct {
	store     *mockBookingStore
	external  *mockBookingSystem
	loyalty   *mockLoyalty
	publisher *mockPublisher
}

func newBookingFixture() *bookingFixture {
	return &bookingFixture{
		store:     new(mockBookingStore),
		external:  new(mockBookingSystem),
		loyalty:   new(mockLoyalty),
		publisher: new(mockPublisher),
	}
}

func (f *bookingFixture) simulated() *BookingService {
	return NewBookingService(f.store, nil, f.loyalty, f.publisher, NewReservations(testRules()), testRules(), nil, testLogger())
}

func (f *bookingFixture) withExternal() *BookingService {
	return NewBookingService(f.store, f.external, nil, nil, NewReservations(testRules()), testRules(), nil, testLogger())
}

func passengers(names ...string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = map[string]interface{}{"name": n}
	}
	return out
}

func TestBookingService_Flight(t *testing.T) {
	f := newBookingFixture()
	var saved travel.Booking
	f.store.On("Save", mock.Anything, mock.AnythingOfType("travel.Booking")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(travel.Booking) }).
		Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.BookingConfirmed")).Return(nil)
	f.loyalty.On("AddPoints", mock.Anything, ports.PointsAward{
		UserID: "user-1", Points: 300, Activity: "Flight Booking", Amount: 1500,
	}).Return(nil)

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "Flight",
		Details: travel.Record{
			"flight_id":  "TAP-1234-20250601-Business",
			"passengers": passengers("Ana", "Bo"),
		},
		UserInfo: travel.Record{"id": "user-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, travel.StatusConfirmed, result.Status)
	conf := result.Confirmation
	assert.Equal(t, "TAP", conf["airline"])
	assert.Equal(t, "1234", conf["flight_number"])
	assert.Equal(t, "20250601", conf["departure_date"])
	assert.Equal(t, 2, conf["passengers"])
	assert.Equal(t, []string{"Ana", "Bo"}, conf["passenger_names"])
	assert.Equal(t, 1500.0, conf["total_amount"])
	assert.Equal(t, "USD", conf["currency"])
	assert.Regexp(t, confirmationPattern, conf["confirmation_code"])
	assert.Equal(t, travel.ConfirmationCode("AIR", result.BookingID), conf["confirmation_code"])

	assert.Equal(t, result.BookingID, saved.BookingID)
	assert.Equal(t, "Flight", saved.BookingType)
	assert.Equal(t, "user-1", saved.UserID())
	assert.Equal(t, conf, saved.Confirmation)

	f.store.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.loyalty.AssertExpectations(t)
}

func TestBookingService_Hotel(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "hotel",
		Details: travel.Record{
			"hotel_id":  "GRAND-LISBON-4",
			"room_type": "Suite",
			"check_in":  "2025-06-01",
			"check_out": "2025-06-04",
			"guests":    passengers("Ana"),
		},
		UserInfo: travel.Record{"email": "ana@example.com"},
	})

	require.NoError(t, err)
	conf := result.Confirmation
	assert.Equal(t, "GRAND", conf["hotel_name"])
	assert.Equal(t, "LISBON", conf["location"])
	assert.Equal(t, 4, conf["stars"])
	assert.Equal(t, 3, conf["nights"])
	assert.Equal(t, 1110.0, conf["total_amount"])
	assert.Equal(t, travel.ConfirmationCode("HTL", result.BookingID), conf["confirmation_code"])
	f.loyalty.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything)
}

func TestBookingService_HotelStarsDefault(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "hotel",
		Details: travel.Record{
			"hotel_id": "INN-FARO-x", "room_type": "standard",
			"check_in": "2025-06-01", "check_out": "2025-06-02", "guests": passengers("Ana"),
		},
		UserInfo: travel.Record{"name": "Ana"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Confirmation["stars"])
	assert.Equal(t, 190.0, result.Confirmation["total_amount"])
}

func TestBookingService_Activity(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.loyalty.On("AddPoints", mock.Anything, ports.PointsAward{
		UserID: "u", Points: 7, Activity: "Activity Booking", Amount: 75,
	}).Return(errors.New("loyalty down"))

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "activity",
		Details: travel.Record{
			"activity_id":  "WALK-museum-PORTO",
			"date":         "2025-06-02",
			"time_slot":    "10:00",
			"participants": passengers("A", "B", "C"),
		},
		UserInfo: travel.Record{"id": "u"},
	})

	require.NoError(t, err)
	assert.Equal(t, "museum", result.Confirmation["activity_type"])
	assert.Equal(t, 75.0, result.Confirmation["total_amount"])
	assert.Equal(t, travel.ConfirmationCode("ACT", result.BookingID), result.Confirmation["confirmation_code"])
	f.loyalty.AssertExpectations(t)
}

func TestBookingService_Package(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingConfirmed) bool {
		return e.BookingType == "package" && e.TotalAmount == 970
	})).Return(nil)

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "package",
		Details: travel.Record{
			"flight": map[string]interface{}{"flight_id": "ABC-1000-20250601-economy", "passengers": passengers("Ana", "Bo")},
			"hotel": map[string]interface{}{
				"hotel_id": "GRAND-PORTO-3", "room_type": "standard",
				"check_in": "2025-06-01", "check_out": "2025-06-03", "guests": passengers("Ana", "Bo"),
			},
			"activities": []interface{}{
				map[string]interface{}{"activity_id": "WALK-tour-PORTO", "date": "2025-06-02", "time_slot": "09:00", "participants": passengers("Ana", "Bo")},
			},
		},
		UserInfo: travel.Record{"name": "Ana"},
	})

	require.NoError(t, err)
	conf := result.Confirmation
	assert.Equal(t, 970.0, conf["total_amount"])
	assert.Equal(t, travel.ConfirmationCode("PKG", result.BookingID), conf["confirmation_code"])
	assert.Equal(t, result.BookingID+"-flight", conf.Record("flight")["booking_id"])
	assert.Equal(t, result.BookingID+"-hotel", conf.Record("hotel")["booking_id"])
	activities := conf["activities"].([]travel.Record)
	require.Len(t, activities, 1)
	assert.Equal(t, result.BookingID+"-activity-1", activities[0]["booking_id"])
	f.publisher.AssertExpectations(t)
}

func TestBookingService_PackageFailureCombinesMessages(t *testing.T) {
	f := newBookingFixture()

	_, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type: "package",
		Details: travel.Record{
			"flight": map[string]interface{}{"flight_id": "BAD", "passengers": passengers("Ana")},
			"hotel":  map[string]interface{}{"hotel_id": "GRAND-PORTO-3"},
			"activities": []interface{}{
				map[string]interface{}{"activity_id": "WALK-tour-PORTO", "date": "2025-06-02", "time_slot": "09:00", "participants": passengers("Ana")},
				map[string]interface{}{"activity_id": "WALK-tour-PORTO", "date": "2025-06-02", "time_slot": "09:00"},
			},
		},
		UserInfo: travel.Record{"id": "u"},
	})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Package booking failed: Flight: Invalid flight ID format; Hotel: Missing required hotel parameters; Activity 2: Missing required parameter: participants", appErr.Message)
	f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_Validation(t *testing.T) {
	details := travel.Record{"flight_id": "x"}
	user := travel.Record{"id": "u"}

	tests := []struct {
		name string
		req  BookingRequest
		msg  string
	}{
		{name: "missing type", req: BookingRequest{Details: details, UserInfo: user}, msg: "Missing required parameter: type"},
		{name: "missing details", req: BookingRequest{Type: "flight", UserInfo: user}, msg: "Missing required parameter: details"},
		{name: "missing user info", req: BookingRequest{Type: "flight", Details: details}, msg: "Missing required parameter: user_info"},
		{name: "unsupported type", req: BookingRequest{Type: "train", Details: details, UserInfo: user}, msg: "Unsupported booking type: train"},
		{name: "flight without passengers", req: BookingRequest{Type: "flight", Details: details, UserInfo: user}, msg: "Missing required parameter: passengers"},
		{name: "flight without id", req: BookingRequest{Type: "flight", Details: travel.Record{"passengers": passengers("A")}, UserInfo: user}, msg: "Missing required parameter: flight_id"},
		{name: "hotel dates reversed", req: BookingRequest{Type: "hotel", Details: travel.Record{
			"hotel_id": "A-B-3", "room_type": "standard", "check_in": "2025-06-03", "check_out": "2025-06-01", "guests": passengers("A"),
		}, UserInfo: user}, msg: "Check-out date must be after check-in date"},
		{name: "activity id format", req: BookingRequest{Type: "activity", Details: travel.Record{
			"activity_id": "WALK", "date": "2025-06-02", "time_slot": "09:00", "participants": passengers("A"),
		}, UserInfo: user}, msg: "Invalid activity ID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()

			_, err := f.simulated().CreateBooking(context.Background(), tt.req)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestBookingService_ExternalSystem(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.external.On("Book", mock.Anything, "flight", mock.MatchedBy(func(d travel.Record) bool {
		return d["flight_id"] == "X-1-2-economy" && d["booking_id"] != "" && d.Has("payment_info")
	})).Return(travel.Record{"status": "pending", "total_amount": float64(99)})

	result, err := f.withExternal().CreateBooking(context.Background(), BookingRequest{
		Type:        "flight",
		Details:     travel.Record{"flight_id": "X-1-2-economy", "passengers": passengers("A")},
		UserInfo:    travel.Record{"id": "u"},
		PaymentInfo: travel.Record{"card": "tok_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	f.external.AssertExpectations(t)
}

func TestBookingService_ExternalErrorIsBadRequest(t *testing.T) {
	f := newBookingFixture()
	f.external.On("Book", mock.Anything, "hotel", mock.Anything).
		Return(travel.BookingError("Booking system returned error: 503"))

	_, err := f.withExternal().CreateBooking(context.Background(), BookingRequest{
		Type: "hotel",
		Details: travel.Record{
			"hotel_id": "A-B-3", "room_type": "standard", "check_in": "2025-06-01", "check_out": "2025-06-02", "guests": passengers("A"),
		},
		UserInfo: travel.Record{"id": "u"},
	})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Booking system returned error: 503", appErr.Message)
}

func TestBookingService_StoreFailureStillConfirms(t *testing.T) {
	f := newBookingFixture()
	f.external.On("Book", mock.Anything, "flight", mock.Anything).
		Return(travel.Record{"status": "confirmed", "confirmation_code": "EXT-1", "total_amount": float64(400)}).Once()
	f.store.On("Save", mock.Anything, mock.Anything).Return(errors.New("s3 down"))

	result, err := f.withExternal().CreateBooking(context.Background(), BookingRequest{
		Type:     "flight",
		Details:  travel.Record{"flight_id": "A-1-2-economy", "passengers": passengers("A")},
		UserInfo: travel.Record{"id": "u"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.Equal(t, "confirmed", result.Status)
	assert.Equal(t, "EXT-1", result.Confirmation["confirmation_code"])
	f.external.AssertNumberOfCalls(t, "Book", 1)
}

func TestBookingService_StoreFailurePublishesAndAwardsPoints(t *testing.T) {
	f := newBookingFixture()
	f.store.On("Save", mock.Anything, mock.Anything).Return(errors.New("access denied"))
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.BookingConfirmed")).Return(nil)
	f.loyalty.On("AddPoints", mock.Anything, mock.AnythingOfType("ports.PointsAward")).Return(nil)

	result, err := f.simulated().CreateBooking(context.Background(), BookingRequest{
		Type:     "flight",
		Details:  travel.Record{"flight_id": "A-1-2-economy", "passengers": passengers("A")},
		UserInfo: travel.Record{"id": "u"},
	})

	require.NoError(t, err)
	assert.Regexp(t, confirmationPattern, result.Confirmation["confirmation_code"])
	f.publisher.AssertExpectations(t)
	f.loyalty.AssertExpectations(t)
}

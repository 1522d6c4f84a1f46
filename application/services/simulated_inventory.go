package services

import (
	"fmt"
	"strconv"
	"time"

	"travel-assistant/domain/config"
	"travel-assistant/domain/travel"
	"travel-assistant/pkg/utils"
)

const invalidDateMessage = "Invalid date format. Use YYYY-MM-DD"

// FlightOption is one simulated flight leg.
type FlightOption struct {
	Type            string  `json:"type"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Cabin           string  `json:"cabin"`
	AvailableSeats  int     `json:"available_seats"`
	Price           float64 `json:"price"`
}

// HotelOption is one simulated hotel offer.
type HotelOption struct {
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	Address            string   `json:"address"`
	Stars              int      `json:"stars"`
	RoomType           string   `json:"room_type"`
	PricePerNight      float64  `json:"price_per_night"`
	TotalPrice         float64  `json:"total_price"`
	AvailableRooms     int      `json:"available_rooms"`
	Amenities          []string `json:"amenities"`
	CancellationPolicy string   `json:"cancellation_policy"`
}

// ActivityOption is one simulated activity slot.
type ActivityOption struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Location        string   `json:"location"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
	PricePerPerson  float64  `json:"price_per_person"`
	TotalPrice      float64  `json:"total_price"`
	AvailableSpots  int      `json:"available_spots"`
	Language        string   `json:"language"`
	Includes        []string `json:"includes"`
}

var (
	hotelKinds      = []string{"Luxury", "Boutique", "Resort", "Standard"}
	hotelAmenities  = []string{"WiFi", "Breakfast", "Pool", "Spa"}
	guidedIncludes  = []string{"Guide", "Entrance fees"}
	outdoorIncludes = []string{"Equipment", "Instructor", "Safety gear"}
)

// Inventory produces deterministic availability results when no external
// availability system is configured.
type Inventory struct {
	rules *config.DomainConfig
}

// NewInventory creates a simulated inventory priced by rules
func NewInventory(rules *config.DomainConfig) *Inventory {
	return &Inventory{rules: rules}
}

// Flights lists three outbound options and, for round trips, three return options.
func (inv *Inventory) Flights(params travel.Record) travel.Record {
	origin := params.String("origin")
	destination := params.String("destination")
	returnDate := params.String("return_date")
	passengers := params.Int("passengers", 1)
	cabin := params.String("cabin_class")
	if cabin == "" {
		cabin = "economy"
	}

	departure, err := utils.ParseDate(params.String("departure_date"))
	if err != nil {
		return travel.AvailabilityError(invalidDateMessage)
	}
	var returning time.Time
	if returnDate != "" {
		if returning, err = utils.ParseDate(returnDate); err != nil {
			return travel.AvailabilityError(invalidDateMessage)
		}
	}

	premium := 0.0
	if cabin != "economy" {
		premium = inv.rules.SearchCabinPremium
	}

	outbound := make([]FlightOption, 0, 3)
	for i := 0; i < 3; i++ {
		carrier := "XYZ"
		if i == 0 {
			carrier = "ABC"
		}
		depart := departure.Add(time.Duration(i*4+8) * time.Hour)
		outbound = append(outbound, FlightOption{
			Type:            "outbound",
			Airline:         carrier + " Airlines",
			FlightNumber:    fmt.Sprintf("%s%d", carrier, 1000+i),
			Origin:          origin,
			Destination:     destination,
			DepartureTime:   utils.FormatLocal(depart),
			ArrivalTime:     utils.FormatLocal(depart.Add(3 * time.Hour)),
			DurationMinutes: 180,
			Cabin:           cabin,
			AvailableSeats:  10 - i,
			Price:           inv.rules.FlightBaseFare + float64(i*50) + premium,
		})
	}

	returns := make([]FlightOption, 0, 3)
	if returnDate != "" {
		for i := 0; i < 3; i++ {
			carrier := "ABC"
			if i == 0 {
				carrier = "XYZ"
			}
			depart := returning.Add(time.Duration(i*4+10) * time.Hour)
			returns = append(returns, FlightOption{
				Type:            "return",
				Airline:         carrier + " Airlines",
				FlightNumber:    fmt.Sprintf("%s%d", carrier, 2000+i),
				Origin:          destination,
				Destination:     origin,
				DepartureTime:   utils.FormatLocal(depart),
				ArrivalTime:     utils.FormatLocal(depart.Add(3 * time.Hour)),
				DurationMinutes: 180,
				Cabin:           cabin,
				AvailableSeats:  8 - i,
				Price:           280 + float64(i*40) + premium,
			})
		}
	}

	combinations := len(outbound)
	if len(returns) > 0 {
		combinations *= len(returns)
	}

	return travel.Record{
		"available":        true,
		"origin":           origin,
		"destination":      destination,
		"outbound_flights": outbound,
		"return_flights":   returns,
		"roundtrip":        returnDate != "",
		"passengers":       passengers,
		"cabin_class":      cabin,
		"total_options":    combinations,
	}
}

// Hotels lists four offers for the stay.
func (inv *Inventory) Hotels(params travel.Record) travel.Record {
	location := params.String("location")
	checkIn := params.String("check_in")
	checkOut := params.String("check_out")
	rooms := params.Int("rooms", 1)
	guests := params.Int("guests", 1)

	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return travel.AvailabilityError(invalidDateMessage)
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return travel.AvailabilityError(invalidDateMessage)
	}
	nights := utils.NightsBetween(in, out)
	if nights <= 0 {
		return travel.AvailabilityError("Check-out date must be after check-in date")
	}

	requestedStars := hotelClass(params["hotel_class"])

	hotels := make([]HotelOption, 0, len(hotelKinds))
	for i, kind := range hotelKinds {
		stars := requestedStars
		if stars == 0 {
			stars = i + 2
		}
		stars = clamp(stars, 1, 5)

		roomType := "Standard"
		policy := "Free cancellation"
		if i >= 2 {
			roomType = "Deluxe"
			policy = "Non-refundable"
		}

		nightly := inv.rules.HotelBaseRate + float64(stars)*inv.rules.HotelRatePerStar + float64(i*25)
		hotels = append(hotels, HotelOption{
			Name:               fmt.Sprintf("%s Hotel %s", kind, location),
			Location:           location,
			Address:            fmt.Sprintf("%d Main Street, %s", 100+i, location),
			Stars:              stars,
			RoomType:           roomType,
			PricePerNight:      nightly,
			TotalPrice:         nightly * float64(nights*rooms),
			AvailableRooms:     5 - i,
			Amenities:          append([]string(nil), hotelAmenities[:i+1]...),
			CancellationPolicy: policy,
		})
	}

	return travel.Record{
		"available":     true,
		"location":      location,
		"check_in":      checkIn,
		"check_out":     checkOut,
		"stay_nights":   nights,
		"rooms":         rooms,
		"guests":        guests,
		"hotels":        hotels,
		"total_options": len(hotels),
	}
}

// Activities lists three slots of the requested kind plus one slot of every other kind.
func (inv *Inventory) Activities(params travel.Record) travel.Record {
	location := params.String("location")
	date := params.String("date")
	participants := params.Int("participants", 1)

	day, err := utils.ParseDate(date)
	if err != nil {
		return travel.AvailabilityError(invalidDateMessage)
	}

	kind := params.String("activity_type")
	if _, ok := inv.rules.Activities[kind]; !ok {
		kind = inv.rules.DefaultActivityType
	}

	slot := func(k string, start time.Time, spots int) ActivityOption {
		rule := inv.rules.Activities[k]
		includes := guidedIncludes
		if k == "adventure" {
			includes = outdoorIncludes
		}
		return ActivityOption{
			Name:            rule.Name,
			Type:            k,
			Location:        location,
			Date:            date,
			StartTime:       utils.FormatLocal(start),
			EndTime:         utils.FormatLocal(start.Add(time.Duration(rule.DurationMinutes) * time.Minute)),
			DurationMinutes: rule.DurationMinutes,
			PricePerPerson:  rule.Price,
			TotalPrice:      rule.Price * float64(participants),
			AvailableSpots:  spots,
			Language:        "English",
			Includes:        append([]string(nil), includes...),
		}
	}

	options := make([]ActivityOption, 0, 3+len(inv.rules.ActivityOrder))
	for i := 0; i < 3; i++ {
		options = append(options, slot(kind, day.Add(time.Duration(9+i*3)*time.Hour), 20-i*5))
	}
	for _, other := range inv.rules.ActivityOrder {
		if other != kind {
			options = append(options, slot(other, day.Add(10*time.Hour), 15))
		}
	}

	return travel.Record{
		"available":     true,
		"location":      location,
		"date":          date,
		"activity_type": kind,
		"participants":  participants,
		"activities":    options,
		"total_options": len(options),
	}
}

// hotelClass reads a requested star rating; anything unusable means "any".
func hotelClass(v interface{}) int {
	switch c := v.(type) {
	case string:
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	case float64:
		if c > 0 {
			return int(c)
		}
	}
	return 0
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

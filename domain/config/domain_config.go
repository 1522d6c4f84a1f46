package config

import (
	"fmt"
	"strings"
	"time"
)

// ActivityRule describes one simulated activity kind.
type ActivityRule struct {
	Name            string
	DurationMinutes int
	Price           float64
}

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Knowledge retrieval
	KnowledgeResults int

	// Generation settings
	IdeationMaxTokens   int
	IdeationTemperature float64
	QAMaxTokens         int
	QATemperature       float64

	// Flight pricing
	FlightBaseFare     float64
	FlightCabinFares   map[string]float64
	SearchCabinPremium float64

	// Hotel pricing
	HotelBaseRate      float64
	HotelRatePerStar   float64
	HotelRoomSurcharge map[string]float64
	DefaultHotelStars  int

	// Activity pricing
	Activities           map[string]ActivityRule
	ActivityOrder        []string
	DefaultActivityType  string
	DefaultActivityPrice float64

	// Loyalty
	LoyaltyPointRate       float64
	FlightLoyaltyPointRate float64

	// Session constraints
	SessionTTL time.Duration

	Currency string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		KnowledgeResults: 3,

		IdeationMaxTokens:   1500,
		IdeationTemperature: 0.7,
		QAMaxTokens:         1000,
		QATemperature:       0.2,

		FlightBaseFare: 250,
		FlightCabinFares: map[string]float64{
			"business": 750,
			"first":    1200,
		},
		SearchCabinPremium: 150,

		HotelBaseRate:    100,
		HotelRatePerStar: 30,
		HotelRoomSurcharge: map[string]float64{
			"deluxe": 50,
			"suite":  150,
		},
		DefaultHotelStars: 3,

		Activities: map[string]ActivityRule{
			"tour":      {Name: "City Guided Tour", DurationMinutes: 180, Price: 45},
			"museum":    {Name: "Museum Visit", DurationMinutes: 120, Price: 25},
			"adventure": {Name: "Outdoor Adventure", DurationMinutes: 240, Price: 85},
			"culinary":  {Name: "Food Tasting Experience", DurationMinutes: 150, Price: 60},
		},
		ActivityOrder:        []string{"tour", "museum", "adventure", "culinary"},
		DefaultActivityType:  "tour",
		DefaultActivityPrice: 50,

		LoyaltyPointRate:       0.1,
		FlightLoyaltyPointRate: 0.2,

		SessionTTL: 24 * time.Hour,

		Currency: "USD",
	}
}

// FlightFare returns the per-passenger fare for a booked cabin class.
func (c *DomainConfig) FlightFare(cabinClass string) float64 {
	if fare, ok := c.FlightCabinFares[strings.ToLower(cabinClass)]; ok {
		return fare
	}
	return c.FlightBaseFare
}

// NightlyRate returns the nightly price of a room.
func (c *DomainConfig) NightlyRate(stars int, roomType string) float64 {
	return c.HotelBaseRate + float64(stars)*c.HotelRatePerStar + c.HotelRoomSurcharge[strings.ToLower(roomType)]
}

// ActivityPrice returns the per-participant price for an activity type.
func (c *DomainConfig) ActivityPrice(activityType string) float64 {
	if rule, ok := c.Activities[strings.ToLower(activityType)]; ok {
		return rule.Price
	}
	return c.DefaultActivityPrice
}

// LoyaltyPoints returns the points earned for a booking amount.
func (c *DomainConfig) LoyaltyPoints(bookingType string, amount float64) int {
	if strings.EqualFold(bookingType, "flight") {
		return int(amount * c.FlightLoyaltyPointRate)
	}
	return int(amount * c.LoyaltyPointRate)
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.KnowledgeResults <= 0 {
		return fmt.Errorf("knowledge results must be positive")
	}
	if _, ok := c.Activities[c.DefaultActivityType]; !ok {
		return fmt.Errorf("default activity type %q has no rule", c.DefaultActivityType)
	}
	for _, kind := range c.ActivityOrder {
		if _, ok := c.Activities[kind]; !ok {
			return fmt.Errorf("activity type %q has no rule", kind)
		}
	}
	return nil
}

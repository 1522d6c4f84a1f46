package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"travel-assistant/application/ports"
	"travel-assistant/domain/travel"
)

const (
	noPreferences = "No specific preferences provided."
	noKnowledge   = "No specific travel knowledge available."
	noBookings    = "No booking information available."
)

// knownPreferences are rendered first, in this order, and only when set.
var knownPreferences = []struct {
	key   string
	label string
}{
	{"budget", "Budget"},
	{"accommodation_type", "Accommodation Type"},
	{"trip_duration", "Trip Duration"},
	{"interests", "Interests"},
	{"travel_style", "Travel Style"},
	{"dietary_restrictions", "Dietary Restrictions"},
}

const ideationPromptTemplate = `You are a travel expert assistant specializing in generating creative and personalized travel ideas.

USER QUERY:
%s

USER PREFERENCES:
%s

RELEVANT TRAVEL KNOWLEDGE:
%s

Please generate 3-5 specific travel ideas that address the user's query, taking into account their preferences.
For each idea:
1. Provide a title
2. Write a brief description (2-3 sentences)
3. List 2-3 key highlights or attractions
4. Suggest an ideal duration for this experience

Format your response as a structured list of ideas, with each idea having these components clearly labeled.
Make your suggestions specific, actionable, and tailored to the context provided.
`

const qaPromptTemplate = `You are a helpful travel assistant specializing in providing accurate information about customer bookings.

USER QUERY:
%s

BOOKING INFORMATION:
%s

Please answer the user's question based on the booking information provided above.
Be specific, factual, and only use the information provided.
If the answer is not explicitly found in the booking information, acknowledge this and suggest what information might be needed.
If the query is about changing or cancelling a booking, explain the general policy but advise the user to contact customer service for specific actions.
Format any dates, times, and monetary values clearly.
`

// ideationPrompt assembles the recommendation request sent to the model.
func ideationPrompt(query, preferences, knowledge string) string {
	return fmt.Sprintf(ideationPromptTemplate, query, preferences, knowledge)
}

// qaPrompt assembles the booking question sent to the model.
func qaPrompt(query, bookingContext string) string {
	return fmt.Sprintf(qaPromptTemplate, query, bookingContext)
}

// formatPreferences renders known preferences in a fixed order, then every
// other key alphabetically with a title-cased label.
func formatPreferences(preferences map[string]interface{}) string {
	if len(preferences) == 0 {
		return noPreferences
	}

	var lines []string
	known := make(map[string]bool, len(knownPreferences))
	for _, pref := range knownPreferences {
		known[pref.key] = true
		if v, ok := preferences[pref.key]; ok && isSet(v) {
			lines = append(lines, pref.label+": "+preferenceValue(v))
		}
	}

	var others []string
	for key := range preferences {
		if !known[key] {
			others = append(others, key)
		}
	}
	sort.Strings(others)
	for _, key := range others {
		lines = append(lines, titleLabel(key)+": "+preferenceValue(preferences[key]))
	}

	return strings.Join(lines, "\n")
}

// formatKnowledge renders retrieved passages as a bulleted block.
func formatKnowledge(passages []ports.KnowledgePassage) string {
	if len(passages) == 0 {
		return noKnowledge
	}

	items := make([]string, len(passages))
	for i, p := range passages {
		items[i] = "- " + p.Content
	}
	return strings.Join(items, "\n\n")
}

func preferenceValue(v interface{}) string {
	list, ok := v.([]interface{})
	if !ok {
		if strs, isStrings := v.([]string); isStrings {
			return strings.Join(strs, ", ")
		}
		return travel.Text(v)
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = travel.Text(item)
	}
	return strings.Join(parts, ", ")
}

// isSet reports whether a preference carries a usable value.
func isSet(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case []interface{}:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	}
	return true
}

// titleLabel turns "pet_friendly" into "Pet Friendly".
func titleLabel(key string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(key, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := []rune(strings.ToLower(s))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}

// formatBookingContext renders stored bookings for the question-answering prompt.
func formatBookingContext(bookings []travel.Booking) string {
	if len(bookings) == 0 {
		return noBookings
	}

	parts := make([]string, len(bookings))
	for i, b := range bookings {
		parts[i] = strings.Join(bookingLines(i+1, b), "\n")
	}
	return strings.Join(parts, "\n\n")
}

func bookingLines(n int, b travel.Booking) []string {
	bookingType := strings.ToLower(b.BookingType)
	if bookingType == "" {
		bookingType = "unknown"
	}
	conf := b.Confirmation
	details := b.Details

	lines := []string{
		fmt.Sprintf("BOOKING %d:", n),
		"Booking ID: " + orUnknown(b.BookingID),
		"Type: " + capitalize(bookingType),
		"Status: " + orUnknown(b.Status),
		"Booking Date: " + orUnknown(b.Timestamp),
	}

	if len(conf) > 0 {
		if conf.Has("confirmation_code") {
			lines = append(lines, "Confirmation Code: "+conf.String("confirmation_code"))
		}
		if conf.Has("total_amount") {
			lines = append(lines, fmt.Sprintf("Total Amount: $%s %s", conf.String("total_amount"), conf.StringOr("currency", "USD")))
		}
	}

	switch bookingType {
	case travel.TypeFlight:
		if len(conf) > 0 {
			lines = append(lines,
				"Airline: "+conf.StringOr("airline", "unknown"),
				"Flight Number: "+conf.StringOr("flight_number", "unknown"),
				"Departure Date: "+conf.StringOr("departure_date", "unknown"),
				"Cabin Class: "+conf.StringOr("cabin_class", "unknown"),
				"Passengers: "+passengerCount(conf),
			)
		} else if len(details) > 0 {
			lines = append(lines,
				"Flight ID: "+details.StringOr("flight_id", "unknown"),
				fmt.Sprintf("Passengers: %d", len(details.List("passengers"))),
			)
		}

	case travel.TypeHotel:
		if len(conf) > 0 {
			lines = append(lines,
				"Hotel: "+conf.StringOr("hotel_name", "unknown"),
				"Location: "+conf.StringOr("location", "unknown"),
				"Room Type: "+conf.StringOr("room_type", "unknown"),
				"Check-in: "+conf.StringOr("check_in", "unknown"),
				"Check-out: "+conf.StringOr("check_out", "unknown"),
				"Nights: "+conf.StringOr("nights", "0"),
				"Guests: "+conf.StringOr("guests", "0"),
			)
		} else if len(details) > 0 {
			lines = append(lines,
				"Hotel ID: "+details.StringOr("hotel_id", "unknown"),
				"Room Type: "+details.StringOr("room_type", "unknown"),
				"Check-in: "+details.StringOr("check_in", "unknown"),
				"Check-out: "+details.StringOr("check_out", "unknown"),
				fmt.Sprintf("Guests: %d", len(details.List("guests"))),
			)
		}

	case travel.TypeActivity:
		if len(conf) > 0 {
			lines = append(lines,
				"Activity: "+conf.StringOr("activity_name", "unknown"),
				"Type: "+conf.StringOr("activity_type", "unknown"),
				"Location: "+conf.StringOr("location", "unknown"),
				"Date: "+conf.StringOr("date", "unknown"),
				"Time: "+conf.StringOr("time_slot", "unknown"),
				"Participants: "+conf.StringOr("participants", "0"),
			)
		} else if len(details) > 0 {
			lines = append(lines,
				"Activity ID: "+details.StringOr("activity_id", "unknown"),
				"Date: "+details.StringOr("date", "unknown"),
				"Time: "+details.StringOr("time_slot", "unknown"),
				fmt.Sprintf("Participants: %d", len(details.List("participants"))),
			)
		}

	case travel.TypePackage:
		lines = append(lines, "Package Components:")
		if conf.Has("flight") {
			flight := recordOrEmpty(conf.Record("flight"))
			lines = append(lines,
				"  Flight:",
				"  - Airline: "+flight.StringOr("airline", "unknown"),
				"  - Flight Number: "+flight.StringOr("flight_number", "unknown"),
				"  - Departure Date: "+flight.StringOr("departure_date", "unknown"),
			)
		}
		if conf.Has("hotel") {
			hotel := recordOrEmpty(conf.Record("hotel"))
			lines = append(lines,
				"  Hotel:",
				"  - Name: "+hotel.StringOr("hotel_name", "unknown"),
				"  - Check-in: "+hotel.StringOr("check_in", "unknown"),
				"  - Check-out: "+hotel.StringOr("check_out", "unknown"),
			)
		}
		if activities := conf.Records("activities"); len(activities) > 0 {
			lines = append(lines, "  Activities:")
			for i, a := range activities {
				lines = append(lines, fmt.Sprintf("  - Activity %d: %s on %s",
					i+1, a.StringOr("activity_name", "unknown"), a.StringOr("date", "unknown")))
			}
		}
	}

	return lines
}

// passengerCount reads the passenger total from a flight confirmation.
func passengerCount(conf travel.Record) string {
	if conf.Has("passenger_count") {
		return conf.String("passenger_count")
	}
	return conf.StringOr("passengers", "0")
}

func recordOrEmpty(r travel.Record) travel.Record {
	if r == nil {
		return travel.Record{}
	}
	return r
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

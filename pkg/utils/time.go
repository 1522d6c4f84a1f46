package utils

import "time"

// DateLayout is the YYYY-MM-DD form used for travel dates.
const DateLayout = "2006-01-02"

// LocalDateTimeLayout renders simulated departure and start times without a zone.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// NowRFC3339 returns the current UTC time in RFC3339 format
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseDate parses a YYYY-MM-DD travel date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatLocal renders a simulated time in LocalDateTimeLayout
func FormatLocal(t time.Time) string {
	return t.Format(LocalDateTimeLayout)
}

// NightsBetween returns the whole days from check-in to check-out
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Package travel holds the records exchanged between the booking, availability
// and chat services and their external collaborators.
package travel

import (
	"encoding/json"
	"strconv"
)

// Record is a loosely typed JSON object. Availability results, booking
// confirmations and request parameters all travel as records because the
// external systems define their shape.
type Record map[string]interface{}

// AvailabilityError is the uniform failure shape for availability checks.
func AvailabilityError(message string) Record {
	return Record{"error": message, "available": false}
}

// BookingError is the uniform failure shape for booking attempts.
func BookingError(message string) Record {
	return Record{"error": message}
}

// ErrorMessage returns the record's error and whether one is present.
func (r Record) ErrorMessage() (string, bool) {
	v, ok := r["error"]
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return Text(v), true
}

// Available reports the record's "available" flag; missing or non-boolean is false.
func (r Record) Available() bool {
	b, _ := r["available"].(bool)
	return b
}

// Has reports whether the key is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value under key as a string, or "" when it is absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return Text(v)
}

// StringOr returns the value under key rendered as text, or def when absent.
func (r Record) StringOr(key, def string) string {
	if !r.Has(key) {
		return def
	}
	return r.String(key)
}

// Number returns the value under key as a float64, or 0 when absent or not numeric.
func (r Record) Number(key string) float64 {
	return toNumber(r[key])
}

// Int returns the value under key as an int, or def when absent or not numeric.
func (r Record) Int(key string, def int) int {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// Record returns the nested object under key, or nil.
func (r Record) Record(key string) Record {
	return AsRecord(r[key])
}

// List returns the raw elements of the array under key.
func (r Record) List(key string) []interface{} {
	switch l := r[key].(type) {
	case []interface{}:
		return l
	case []Record:
		out := make([]interface{}, len(l))
		for i, rec := range l {
			out[i] = rec
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	}
	return nil
}

// Records returns the array under key as records; non-object elements become empty records.
func (r Record) Records(key string) []Record {
	raw := r.List(key)
	out := make([]Record, 0, len(raw))
	for _, v := range raw {
		rec := AsRecord(v)
		if rec == nil {
			rec = Record{}
		}
		out = append(out, rec)
	}
	return out
}

// Names collects the "name" field of each object in the array under key.
func (r Record) Names(key string) []string {
	records := r.Records(key)
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.String("name")
	}
	return names
}

// AsRecord converts a decoded JSON object into a Record, or returns nil.
func AsRecord(v interface{}) Record {
	switch m := v.(type) {
	case Record:
		return m
	case map[string]interface{}:
		return Record(m)
	}
	return nil
}

func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}

// Text renders a decoded JSON value for display: strings as-is, whole numbers
// without a fraction, objects and lists as JSON, and nil as "".
func Text(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case bool:
		return strconv.FormatBool(n)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

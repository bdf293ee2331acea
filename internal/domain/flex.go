package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teamcal/teamcal/internal/constants"
)

// Layouts accepted for dates coming from the backend or from task files.
// Zoned layouts are tried first; the remaining ones are floating wall-clock values.
//
//nolint:gochecknoglobals // fixed parse order
var (
	zonedLayouts    = []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"}
	floatingLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"}
)

// FlexTime is a leniently decoded timestamp. Null, empty and unparseable
// values decode to an invalid FlexTime rather than an error, so one bad
// field never rejects a whole task list.
type FlexTime struct {
	// Time is the parsed value. Floating values are stored as UTC wall clock.
	Time time.Time

	// Valid is false when the field was absent or could not be parsed.
	Valid bool

	// DateOnly is set for YYYY-MM-DD values.
	DateOnly bool

	// Floating is set when the source carried no zone offset.
	Floating bool

	// Raw keeps the original text for diagnostics.
	Raw string
}

// NewFlexTime wraps a concrete instant.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t, Valid: true}
}

// NewFlexDate wraps a calendar date.
func NewFlexDate(year int, month time.Month, day int) FlexTime {
	return FlexTime{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true, DateOnly: true, Floating: true}
}

// ParseFlexTime parses s with the accepted layouts.
func ParseFlexTime(s string) FlexTime {
	s = strings.TrimSpace(s)
	ft := FlexTime{Raw: s}
	if s == "" || s == "null" {
		return ft
	}
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return FlexTime{Time: t, Valid: true, DateOnly: true, Floating: true, Raw: s}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexTime{Time: t, Valid: true, Raw: s}
		}
	}
	for _, layout := range floatingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexTime{Time: t, Valid: true, Floating: true, Raw: s}
		}
	}
	return ft
}

// In returns the value as an instant in loc. Floating values keep their wall clock.
func (f FlexTime) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if f.Floating {
		t := f.Time
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	return f.Time.In(loc)
}

// CalendarDate returns midnight in loc of the date as written in the source.
// Zoned values keep the date of their own offset, so the backend's
// "2024-01-15T00:00:00.000Z" means January 15 in every location.
func (f FlexTime) CalendarDate(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(f.Time.Year(), f.Time.Month(), f.Time.Day(), 0, 0, 0, 0, loc)
}

// DateKey returns the source calendar date as YYYY-MM-DD, or "" when invalid.
func (f FlexTime) DateKey() string {
	if !f.Valid {
		return ""
	}
	return f.Time.Format(constants.DateLayout)
}

// IsZero reports whether the value is absent; used by omitzero/omitempty.
func (f FlexTime) IsZero() bool {
	return !f.Valid
}

// String formats the value the way it was received.
func (f FlexTime) String() string {
	switch {
	case !f.Valid:
		return ""
	case f.DateOnly:
		return f.Time.Format(constants.DateLayout)
	case f.Floating:
		return f.Time.Format("2006-01-02T15:04:05")
	default:
		return f.Time.Format(time.RFC3339Nano)
	}
}

// MarshalJSON implements json.Marshaler.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Epoch milliseconds are what JavaScript Date.now() produces.
		ms, numErr := strconv.ParseInt(string(data), 10, 64)
		if numErr != nil {
			*f = FlexTime{Raw: string(data)}
			return nil //nolint:nilerr // undecodable dates are treated as absent
		}
		*f = FlexTime{Time: time.UnixMilli(ms).UTC(), Valid: true, Raw: string(data)}
		return nil
	}
	*f = ParseFlexTime(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (f FlexTime) MarshalYAML() (any, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FlexTime) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*f = FlexTime{}
		return nil
	}
	*f = ParseFlexTime(node.Value)
	return nil
}

// Hours is a leniently decoded hour count. The backend sends numbers,
// numeric strings or null. Like FlexTime it never fails to decode: any
// other value is kept as present but NaN.
type Hours struct {
	Value float64

	// Set is true when the field was present and not null.
	Set bool
}

// NewHours wraps a value.
func NewHours(v float64) Hours {
	return Hours{Value: v, Set: true}
}

// Positive reports whether the value is set, finite and greater than zero.
func (h Hours) Positive() bool {
	return h.Set && !math.IsNaN(h.Value) && !math.IsInf(h.Value, 0) && h.Value > 0
}

// IsZero reports whether the value is absent; used by omitzero/omitempty.
func (h Hours) IsZero() bool {
	return !h.Set
}

// MarshalJSON implements json.Marshaler.
func (h Hours) MarshalJSON() ([]byte, error) {
	if !h.Set || math.IsNaN(h.Value) || math.IsInf(h.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(h.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode hours: %w", err)
	}
	switch val := v.(type) {
	case nil:
		*h = Hours{}
	case float64:
		*h = NewHours(val)
	case string:
		*h = parseHours(val)
	default:
		// Booleans, objects and arrays are present but unusable; the
		// hours policy decides what happens to the record.
		*h = NewHours(math.NaN())
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h Hours) MarshalYAML() (any, error) {
	if !h.Set {
		return nil, nil
	}
	return h.Value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Hours) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		*h = Hours{}
	case node.Kind != yaml.ScalarNode:
		*h = NewHours(math.NaN())
	default:
		*h = parseHours(node.Value)
	}
	return nil
}

// parseHours converts text to Hours. Empty text is absent; other
// non-numeric text is present but NaN, so the hours policy applies.
func parseHours(s string) Hours {
	s = strings.TrimSpace(s)
	if s == "" {
		return Hours{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NewHours(math.NaN())
	}
	return NewHours(v)
}

package types

import (
	"fmt"
	"regexp"
	"time"
)

// timePattern matches 24-hour wall-clock time in HH:MM form.
var timePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// The fixed-width format makes lexicographic comparison equivalent to
// numeric comparison, but all comparisons go through minute arithmetic
// to keep the semantics explicit.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, truncating to minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates a "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("invalid time string format: %q, expected HH:MM", string(t))
	}
	return nil
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// ToMinutes converts the time to minutes since midnight.
// The value must be valid; invalid values return an error.
func (t TimeString) ToMinutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("failed to parse time string %q: %w", string(t), err)
	}
	return hours*60 + minutes, nil
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. Crossing midnight is an error: bookings are same-day ranges.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.ToMinutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total > 23*60+59 {
		return "", fmt.Errorf("time %q + %d minutes is outside of the day", string(t), minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Both values must be valid HH:MM strings.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String returns the raw "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for earnings buckets.
const DateLayout = "2006-01-02"

// LoadLocation resolves a timezone name, falling back to UTC when it is
// empty or unknown.
func LoadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateKey formats t as a YYYY-MM-DD day in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "03:04 PM"}

// ParseAppointmentTime combines a date and a clock time into one instant in loc.
func ParseAppointmentTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	for _, layout := range clockLayouts {
		t, err := time.ParseInLocation(DateLayout+" "+layout, date+" "+clock, loc)
		if err == nil {
			return t, nil
		}
	}

	// Full timestamps are accepted in the date field with the clock left empty.
	if clock == "" {
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid appointment date/time %q %q", date, clock)
}

package event

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used across the domain model.
const DateLayout = "2006-01-02"

// TimeLayout is the local time-of-day format used across the domain model.
const TimeLayout = "15:04"

// ParseDate parses a "YYYY-MM-DD" value into a civil date anchored at
// midnight UTC. Date arithmetic in the recurrence engine operates on these
// values, so all dates must share the same location.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("event: invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// FormatDate renders a civil date back into the "YYYY-MM-DD" wire format.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// MinuteOfDay parses a "HH:MM" value into minutes since midnight.
func MinuteOfDay(value string) (int, error) {
	parsed, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, fmt.Errorf("event: invalid time %q: %w", value, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// StartAt combines the event's date and start time into a concrete instant
// in the provided location. It assumes a validated form.
func (e Event) StartAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, err := ParseDate(e.Date)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := MinuteOfDay(e.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, loc), nil
}

// Package testfixtures provides deterministic builders for tests across the
// calendar packages. Fixtures are safe for concurrent use and yield stable
// values unless explicitly overridden.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/personal-calendar/internal/event"
)

var eventCounter uint64

// ReferenceTime is the shared anchor instant used by fixtures and the Clock
// default: a Wednesday morning well inside the recurrence generation window.
func ReferenceTime() time.Time {
	kst := time.FixedZone("KST", 9*60*60)
	return time.Date(2025, time.October, 1, 9, 0, 0, 0, kst)
}

// ReferenceDate is ReferenceTime's calendar date in storage form.
func ReferenceDate() string {
	return ReferenceTime().Format(event.DateLayout)
}

// EventOption mutates an event fixture before it is returned.
type EventOption func(*event.Event)

// WithEventID sets an explicit identifier instead of the generated one.
func WithEventID(id string) EventOption {
	return func(e *event.Event) { e.ID = id }
}

// WithEventTitle overrides the generated title.
func WithEventTitle(title string) EventOption {
	return func(e *event.Event) { e.Title = title }
}

// WithEventDate sets the event's calendar date ("YYYY-MM-DD").
func WithEventDate(date string) EventOption {
	return func(e *event.Event) { e.Date = date }
}

// WithEventTimes sets the start and end wall-clock times ("HH:MM").
func WithEventTimes(start, end string) EventOption {
	return func(e *event.Event) {
		e.StartTime = start
		e.EndTime = end
	}
}

// WithEventCategory overrides the default category.
func WithEventCategory(category string) EventOption {
	return func(e *event.Event) { e.Category = category }
}

// WithEventDescription sets the free-text description.
func WithEventDescription(description string) EventOption {
	return func(e *event.Event) { e.Description = description }
}

// WithEventLocation sets the free-text location.
func WithEventLocation(location string) EventOption {
	return func(e *event.Event) { e.Location = location }
}

// WithEventRepeat configures the fixture's repeat rule.
func WithEventRepeat(kind event.RepeatKind, interval int, endDate string) EventOption {
	return func(e *event.Event) {
		e.Repeat = event.RepeatRule{Kind: kind, Interval: interval, EndDate: endDate}
	}
}

// WithEventLead sets the notification lead time in minutes.
func WithEventLead(minutes int) EventOption {
	return func(e *event.Event) { e.NotificationLead = minutes }
}

// WithSeriesMembership marks the fixture as a materialized recurrence
// instance belonging to the given series.
func WithSeriesMembership(seriesID string, index int) EventOption {
	return func(e *event.Event) {
		e.IsRecurrenceInstance = true
		e.SeriesID = seriesID
		e.InstanceIndex = index
	}
}

// NewEvent builds a persisted-looking calendar event with sequential identity
// and sensible defaults: a one hour meeting on the reference date.
func NewEvent(opts ...EventOption) event.Event {
	n := atomic.AddUint64(&eventCounter, 1)
	fixture := event.Event{
		Form: event.Form{
			Title:            fmt.Sprintf("일정 %d", n),
			Date:             ReferenceDate(),
			StartTime:        "10:00",
			EndTime:          "11:00",
			Category:         "업무",
			Repeat:           event.RepeatRule{Kind: event.RepeatNone},
			NotificationLead: 10,
		},
		ID: fmt.Sprintf("event-%d", n),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// NewEventForm builds an unsaved submission form with the same defaults as
// NewEvent but no identity.
func NewEventForm(opts ...EventOption) event.Form {
	fixture := NewEvent(opts...)
	fixture.ID = ""
	return fixture.Form
}

package application

import (
	"time"

	"github.com/example/personal-calendar/internal/event"
)

// CreateEventParams wraps the data required to create an event or series.
type CreateEventParams struct {
	Form event.Form
	// ConfirmOverlaps acknowledges previously reported conflicts. Creation
	// is all-or-nothing: without confirmation a conflicting series creates
	// no records at all.
	ConfirmOverlaps bool
}

// CreateEventResult reports what a create attempt produced.
type CreateEventResult struct {
	// Created holds the persisted records with their assigned identities.
	// Empty when conflicts blocked the attempt.
	Created []event.Event
	// Conflicts lists every existing event that overlaps the candidate or
	// any of its expanded instances.
	Conflicts []event.Event
}

// UpdateEventParams wraps the data required to update an existing event.
type UpdateEventParams struct {
	EventID         string
	Form            event.Form
	ConfirmOverlaps bool
}

// UpdateEventResult reports what an update attempt produced.
type UpdateEventResult struct {
	Updated   event.Event
	Conflicts []event.Event
}

// ListPeriod identifies the range preset requested for event listings.
type ListPeriod string

const (
	// ListPeriodNone indicates no range constraint.
	ListPeriodNone ListPeriod = ""
	// ListPeriodDay constrains results to a single day.
	ListPeriodDay ListPeriod = "day"
	// ListPeriodWeek constrains results to the Monday-start week containing the reference time.
	ListPeriodWeek ListPeriod = "week"
	// ListPeriodMonth constrains results to the month containing the reference time.
	ListPeriodMonth ListPeriod = "month"
)

// ListEventsParams wraps the data required to list events.
type ListEventsParams struct {
	Period    ListPeriod
	Reference time.Time
	// SearchTerm filters results on title, description and location.
	SearchTerm string
}

// Settings carries the environment-injected constants the service requires.
type Settings struct {
	// HardCeiling is the system-wide maximum recurrence generation date.
	HardCeiling time.Time
	// Categories enumerates the accepted event categories.
	Categories []string
	// NotificationLeads enumerates the selectable lead times in minutes.
	NotificationLeads []int
	// Location is the zone in which period windows are computed.
	Location *time.Location
}

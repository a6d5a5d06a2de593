package event

// RepeatKind identifies the fixed-interval recurrence pattern of a form.
type RepeatKind string

const (
	// RepeatNone indicates a standalone, non-repeating event.
	RepeatNone RepeatKind = "none"
	// RepeatDaily repeats every Interval days.
	RepeatDaily RepeatKind = "daily"
	// RepeatWeekly repeats every Interval weeks.
	RepeatWeekly RepeatKind = "weekly"
	// RepeatMonthly repeats every Interval months, clamping to month end.
	RepeatMonthly RepeatKind = "monthly"
	// RepeatYearly repeats every Interval years, clamping Feb 29 anchors.
	RepeatYearly RepeatKind = "yearly"
)

// Valid reports whether the kind is one of the enumerated repeat patterns.
func (k RepeatKind) Valid() bool {
	switch k {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// RepeatRule describes a fixed-interval recurrence configuration.
type RepeatRule struct {
	Kind     RepeatKind
	Interval int
	// EndDate optionally bounds generation ("YYYY-MM-DD"). When empty, the
	// system-wide hard ceiling applies instead.
	EndDate string
}

// Form captures caller provided event fields before identity assignment.
type Form struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Description string
	Location    string
	Category    string
	Repeat      RepeatRule
	// NotificationLead is the number of minutes before start at which the
	// event's notification should fire.
	NotificationLead int
}

// Event represents a calendar record, either standalone or one materialized
// instance of a recurring series. Instances are independent records after
// creation; editing or deleting one never affects its siblings.
type Event struct {
	Form

	// ID is assigned by the persistence collaborator, never by the core.
	// It is empty on freshly expanded instances.
	ID string

	// IsRecurrenceInstance marks events produced by recurrence expansion.
	IsRecurrenceInstance bool

	// SeriesID is the series-grouping token shared by every instance
	// produced from one expansion. Empty on standalone events.
	SeriesID string

	// InstanceIndex is the 0-based ordinal position within the series.
	InstanceIndex int
}

// Detach converts a recurrence instance into a standalone single event,
// discarding its series membership. Used when an instance is edited. The
// repeat rule itself is left in place; detached records are never
// re-expanded because no live link back to a rule exists.
func (e Event) Detach() Event {
	e.IsRecurrenceInstance = false
	e.SeriesID = ""
	e.InstanceIndex = 0
	return e
}

package recurrence

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/personal-calendar/internal/event"
)

// ErrInvalidKind indicates the repeat kind is not in the enumerated set.
var ErrInvalidKind = errors.New("recurrence: invalid repeat kind")

// ErrInvalidInterval indicates the repeat interval is below one.
var ErrInvalidInterval = errors.New("recurrence: interval must be at least 1")

// ErrMissingCeiling indicates no hard generation ceiling was supplied.
// Callers must always provide a concrete ceiling; an absent rule end date is
// never treated as "no limit".
var ErrMissingCeiling = errors.New("recurrence: hard generation ceiling is required")

// Expander materializes recurrence rules into concrete dated instances.
type Expander struct {
	seriesToken func() string
}

// NewExpander constructs an Expander. When tokenFn is nil, series-grouping
// tokens are generated with uuid.NewString.
func NewExpander(tokenFn func() string) *Expander {
	if tokenFn == nil {
		tokenFn = uuid.NewString
	}
	return &Expander{seriesToken: tokenFn}
}

// Expand produces the ordered instances of the base form's recurrence rule.
//
// Instance 0 is anchored at the base date. Subsequent dates are produced by
// the kind's step function until the candidate date exceeds the effective
// end, which is the earlier of the rule's end date and the hard ceiling
// (inclusive on both). Month-end and leap-year anchors clamp per instance
// from the original anchor day, so a clamped date never drifts the series
// toward ever-smaller days.
//
// Every instance copies the base form's non-date fields, carries a shared
// series token and an incrementing index, and has an empty ID: identity
// assignment belongs to the persistence collaborator.
//
// A rule of kind "none" expands to an empty sequence.
func (x *Expander) Expand(base event.Form, hardCeiling time.Time) ([]event.Event, error) {
	rule := base.Repeat
	if !rule.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if rule.Kind == event.RepeatNone {
		return nil, nil
	}
	if rule.Interval < 1 {
		return nil, ErrInvalidInterval
	}
	if hardCeiling.IsZero() {
		return nil, ErrMissingCeiling
	}

	anchor, err := event.ParseDate(base.Date)
	if err != nil {
		return nil, err
	}

	effectiveEnd := hardCeiling
	if rule.EndDate != "" {
		ruleEnd, err := event.ParseDate(rule.EndDate)
		if err != nil {
			return nil, err
		}
		if ruleEnd.Before(effectiveEnd) {
			effectiveEnd = ruleEnd
		}
	}

	tokenFn := x.seriesToken
	if tokenFn == nil {
		tokenFn = uuid.NewString
	}
	seriesID := tokenFn()

	instances := make([]event.Event, 0)
	// Termination relies on date comparison against the effective end, not
	// an iteration cap: each step strictly increases the candidate date, so
	// long series with interval 1 generate fully without silent truncation.
	for step := 0; ; step++ {
		current := instanceDate(anchor, rule.Kind, rule.Interval, step)
		if current.After(effectiveEnd) {
			break
		}
		instance := event.Event{
			Form:                 base,
			IsRecurrenceInstance: true,
			SeriesID:             seriesID,
			InstanceIndex:        step,
		}
		instance.Date = event.FormatDate(current)
		instances = append(instances, instance)
	}

	return instances, nil
}

// instanceDate computes the date of instance number step, always deriving
// from the original anchor so per-step clamping cannot accumulate.
func instanceDate(anchor time.Time, kind event.RepeatKind, interval, step int) time.Time {
	switch kind {
	case event.RepeatDaily:
		return anchor.AddDate(0, 0, interval*step)
	case event.RepeatWeekly:
		return anchor.AddDate(0, 0, 7*interval*step)
	case event.RepeatMonthly:
		return addMonthsClamped(anchor, interval*step)
	case event.RepeatYearly:
		return addYearsClamped(anchor, interval*step)
	}
	return anchor
}

// addMonthsClamped lands on the anchor's day-of-month in the target month,
// clamped to that month's last day when the anchor day exceeds it. Plain
// time.AddDate is unsuitable here: it normalizes Jan 31 + 1 month to Mar 2.
func addMonthsClamped(anchor time.Time, months int) time.Time {
	firstOfTarget := time.Date(anchor.Year(), anchor.Month()+time.Month(months), 1, 0, 0, 0, 0, anchor.Location())
	day := anchor.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, anchor.Location())
}

// addYearsClamped keeps the anchor's month and day, mapping a Feb 29 anchor
// to Feb 28 in non-leap target years for that instance only.
func addYearsClamped(anchor time.Time, years int) time.Time {
	year := anchor.Year() + years
	day := anchor.Day()
	if anchor.Month() == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, anchor.Month(), day, 0, 0, 0, 0, anchor.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

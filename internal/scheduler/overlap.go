package scheduler

import "github.com/example/personal-calendar/internal/event"

// FindOverlaps returns every existing event whose time window intersects the
// candidate's. Two events overlap iff they fall on the same calendar date and
// their [start, end) intervals cross; intervals that merely touch at a
// boundary do not overlap. A candidate with an assigned id never conflicts
// with itself, so editing an event excludes its own stored record.
//
// The function is pure and single-event granular: series-wide detection is
// composed by the caller, one invocation per generated instance.
func FindOverlaps(candidate event.Event, existing []event.Event) []event.Event {
	overlaps := make([]event.Event, 0)
	for _, other := range existing {
		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		if overlaps1(candidate, other) {
			overlaps = append(overlaps, other)
		}
	}
	if len(overlaps) == 0 {
		return nil
	}
	return overlaps
}

// overlaps1 reports whether two events on the same date have crossing
// half-open time intervals. It assumes validated "HH:MM" values; malformed
// input is an upstream precondition violation and is treated as no overlap.
func overlaps1(a, b event.Event) bool {
	if a.Date != b.Date {
		return false
	}
	aStart, err := event.MinuteOfDay(a.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := event.MinuteOfDay(a.EndTime)
	if err != nil {
		return false
	}
	bStart, err := event.MinuteOfDay(b.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := event.MinuteOfDay(b.EndTime)
	if err != nil {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

package notify

import (
	"fmt"
	"time"

	"github.com/example/personal-calendar/internal/event"
)

var kst = time.FixedZone("KST", 9*60*60)

// Record is an ephemeral notification emitted for one event. Records feed a
// transient display collaborator and are never persisted.
type Record struct {
	EventID string
	Title   string
	Lead    int
	Message string
}

// NotifiedSet tracks which event ids have already produced a notification
// during the current process lifetime. The set is caller-owned state passed
// into each poll; only the poll driver mutates it, strictly serialized
// between ticks.
type NotifiedSet struct {
	ids map[string]struct{}
}

// NewNotifiedSet returns an empty notified set.
func NewNotifiedSet() *NotifiedSet {
	return &NotifiedSet{ids: make(map[string]struct{})}
}

// Contains reports whether the event id has already been notified.
func (s *NotifiedSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Mark records the event id as notified. Marking is terminal for the process
// lifetime; there is no way to return an id to the dormant state.
func (s *NotifiedSet) Mark(id string) {
	if s == nil {
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Len returns the number of notified event ids.
func (s *NotifiedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Scheduler evaluates which events are entering their notification window.
type Scheduler struct {
	location *time.Location
}

// NewScheduler constructs a Scheduler that interprets event dates and times
// in the provided location. If loc is nil, Asia/Seoul (KST) is used.
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = kst
	}
	return &Scheduler{location: loc}
}

// Poll returns a record for every event that is inside its notification
// window at now and not yet marked in already. An event is inside its window
// when start - lead <= now < start: once the start time has passed, the
// window is never honored retroactively.
//
// Poll does not mutate already, so repeated calls with the same now and the
// same un-updated set return the same records. The driver marks delivered
// ids afterwards, which is what makes delivery at-most-once per event.
func (s *Scheduler) Poll(events []event.Event, now time.Time, already *NotifiedSet) []Record {
	loc := s.location
	if loc == nil {
		loc = kst
	}

	records := make([]Record, 0)
	for _, candidate := range events {
		if already.Contains(candidate.ID) {
			continue
		}
		start, err := candidate.StartAt(loc)
		if err != nil {
			// Malformed records are an upstream validation failure; skip
			// rather than block every other event's notification.
			continue
		}
		if !now.Before(start) {
			continue
		}
		windowOpen := start.Add(-time.Duration(candidate.NotificationLead) * time.Minute)
		if now.Before(windowOpen) {
			continue
		}
		records = append(records, Record{
			EventID: candidate.ID,
			Title:   candidate.Title,
			Lead:    candidate.NotificationLead,
			Message: Message(candidate),
		})
	}

	if len(records) == 0 {
		return nil
	}
	return records
}

// Message renders the fixed notification template for an event.
func Message(e event.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", e.NotificationLead, e.Title)
}

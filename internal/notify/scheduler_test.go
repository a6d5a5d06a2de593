package notify

import (
	"testing"
	"time"

	"github.com/example/personal-calendar/internal/event"
)

func notifiableEvent(id, date, start string, lead int) event.Event {
	return event.Event{
		Form: event.Form{
			Title:            "점심 약속",
			Date:             date,
			StartTime:        start,
			EndTime:          "23:59",
			Category:         "개인",
			Repeat:           event.RepeatRule{Kind: event.RepeatNone},
			NotificationLead: lead,
		},
		ID: id,
	}
}

func at(t *testing.T, date, clock string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock, kst)
	if err != nil {
		t.Fatalf("failed to parse instant: %v", err)
	}
	return parsed
}

func TestScheduler_Poll_WindowPredicate(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	events := []event.Event{notifiableEvent("event-1", "2025-10-02", "14:00", 10)}

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before the window opens", at(t, "2025-10-02", "13:49:59"), 0},
		{"exactly at window open", at(t, "2025-10-02", "13:50:00"), 1},
		{"inside the window", at(t, "2025-10-02", "13:55:00"), 1},
		{"one second before start", at(t, "2025-10-02", "13:59:59"), 1},
		{"exactly at start", at(t, "2025-10-02", "14:00:00"), 0},
		{"after start", at(t, "2025-10-02", "14:05:00"), 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			records := scheduler.Poll(events, tc.now, NewNotifiedSet())
			if len(records) != tc.want {
				t.Fatalf("expected %d records, got %+v", tc.want, records)
			}
		})
	}
}

func TestScheduler_Poll_AtMostOncePerEvent(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	events := []event.Event{notifiableEvent("event-1", "2025-10-02", "14:00", 10)}
	notified := NewNotifiedSet()

	delivered := 0
	// Sweep from 11 minutes before start to 5 minutes after in 30s steps,
	// marking delivered ids the way the poll driver does.
	for now := at(t, "2025-10-02", "13:49:00"); !now.After(at(t, "2025-10-02", "14:05:00")); now = now.Add(30 * time.Second) {
		records := scheduler.Poll(events, now, notified)
		for _, record := range records {
			notified.Mark(record.EventID)
			delivered++
		}
	}

	if delivered != 1 {
		t.Fatalf("expected exactly one delivery across the sweep, got %d", delivered)
	}
	if !notified.Contains("event-1") {
		t.Fatal("expected event-1 to be marked as notified")
	}
}

func TestScheduler_Poll_NeverFiresRetroactively(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	// First poll happens an hour after the event already started.
	events := []event.Event{notifiableEvent("missed", "2025-10-02", "09:00", 60)}

	records := scheduler.Poll(events, at(t, "2025-10-02", "10:00:00"), NewNotifiedSet())
	if records != nil {
		t.Fatalf("expected no retroactive notification, got %+v", records)
	}
}

func TestScheduler_Poll_IsPureWithRespectToNotifiedSet(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	events := []event.Event{notifiableEvent("event-1", "2025-10-02", "14:00", 10)}
	notified := NewNotifiedSet()
	now := at(t, "2025-10-02", "13:55:00")

	first := scheduler.Poll(events, now, notified)
	second := scheduler.Poll(events, now, notified)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected both polls to return one record, got %d and %d", len(first), len(second))
	}
	if first[0] != second[0] {
		t.Fatalf("expected identical records, got %+v and %+v", first[0], second[0])
	}
	if notified.Len() != 0 {
		t.Fatalf("expected Poll to leave the notified set untouched, got %d entries", notified.Len())
	}
}

func TestScheduler_Poll_MarkedEventsStaySilent(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	events := []event.Event{notifiableEvent("event-1", "2025-10-02", "14:00", 10)}
	notified := NewNotifiedSet()
	notified.Mark("event-1")

	// Guard against re-entry even while still inside the lead window.
	records := scheduler.Poll(events, at(t, "2025-10-02", "13:55:00"), notified)
	if records != nil {
		t.Fatalf("expected no records for an already notified event, got %+v", records)
	}
}

func TestScheduler_Poll_LongLeadWindows(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler(nil)
	// A one-day lead opens the window on the previous calendar date.
	events := []event.Event{notifiableEvent("trip", "2025-10-03", "08:00", 1440)}

	records := scheduler.Poll(events, at(t, "2025-10-02", "08:30:00"), NewNotifiedSet())
	if len(records) != 1 {
		t.Fatalf("expected the 1440 minute lead to be open, got %+v", records)
	}
	if records[0].Lead != 1440 {
		t.Fatalf("expected lead 1440 on the record, got %d", records[0].Lead)
	}
}

func TestMessage_RendersLeadAndTitle(t *testing.T) {
	t.Parallel()

	record := notifiableEvent("event-1", "2025-10-02", "14:00", 10)
	if got, want := Message(record), "10분 후 점심 약속 일정이 시작됩니다."; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNotifiedSet_NilSafety(t *testing.T) {
	t.Parallel()

	var set *NotifiedSet
	if set.Contains("anything") {
		t.Fatal("nil set must not report membership")
	}
	set.Mark("anything")
	if set.Len() != 0 {
		t.Fatal("nil set must stay empty")
	}
}

package testfixtures

import (
	"testing"

	"github.com/example/personal-calendar/internal/event"
)

func TestNewEventAssignsSequentialIdentity(t *testing.T) {
	t.Parallel()

	first := NewEvent()
	second := NewEvent()

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated identifiers")
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct identifiers, got %q twice", first.ID)
	}
	if first.Title == second.Title {
		t.Fatalf("expected distinct titles, got %q twice", first.Title)
	}
	if first.Date != ReferenceDate() {
		t.Fatalf("expected the reference date, got %q", first.Date)
	}
}

func TestNewEventAppliesOptions(t *testing.T) {
	t.Parallel()

	fixture := NewEvent(
		WithEventID("custom"),
		WithEventTitle("주간 회의"),
		WithEventDate("2025-10-15"),
		WithEventTimes("14:00", "15:30"),
		WithEventCategory("개인"),
		WithEventRepeat(event.RepeatWeekly, 2, "2025-12-31"),
		WithEventLead(60),
		WithSeriesMembership("series-9", 3),
	)

	if fixture.ID != "custom" || fixture.Title != "주간 회의" {
		t.Fatalf("expected overrides applied, got %+v", fixture)
	}
	if fixture.Date != "2025-10-15" || fixture.StartTime != "14:00" || fixture.EndTime != "15:30" {
		t.Fatalf("expected schedule overrides, got %+v", fixture)
	}
	if fixture.Repeat.Kind != event.RepeatWeekly || fixture.Repeat.Interval != 2 {
		t.Fatalf("expected repeat rule override, got %+v", fixture.Repeat)
	}
	if !fixture.IsRecurrenceInstance || fixture.SeriesID != "series-9" || fixture.InstanceIndex != 3 {
		t.Fatalf("expected series membership, got %+v", fixture)
	}
	if fixture.NotificationLead != 60 || fixture.Category != "개인" {
		t.Fatalf("expected lead and category overrides, got %+v", fixture)
	}
}

func TestNewEventFormHasNoIdentity(t *testing.T) {
	t.Parallel()

	form := NewEventForm(WithEventTitle("치과"))
	if form.Title != "치과" {
		t.Fatalf("expected title override, got %q", form.Title)
	}
	if form.Category != "업무" || form.StartTime != "10:00" {
		t.Fatalf("expected defaults preserved, got %+v", form)
	}
}

package event

import (
	"testing"
	"time"
)

func TestRepeatKindValid(t *testing.T) {
	t.Parallel()

	for _, kind := range []RepeatKind{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly} {
		if !kind.Valid() {
			t.Fatalf("expected %q to be valid", kind)
		}
	}
	for _, kind := range []RepeatKind{"", "hourly", "Daily"} {
		if kind.Valid() {
			t.Fatalf("expected %q to be invalid", kind)
		}
	}
}

func TestDetachClearsSeriesMembershipOnly(t *testing.T) {
	t.Parallel()

	instance := Event{
		Form: Form{
			Title:  "월간 보고",
			Date:   "2025-02-28",
			Repeat: RepeatRule{Kind: RepeatMonthly, Interval: 1, EndDate: "2025-04-30"},
		},
		ID:                   "event-2",
		IsRecurrenceInstance: true,
		SeriesID:             "series-1",
		InstanceIndex:        1,
	}

	detached := instance.Detach()

	if detached.IsRecurrenceInstance || detached.SeriesID != "" || detached.InstanceIndex != 0 {
		t.Fatalf("expected series membership cleared, got %+v", detached)
	}
	if detached.ID != "event-2" || detached.Title != "월간 보고" || detached.Date != "2025-02-28" {
		t.Fatalf("expected record fields preserved, got %+v", detached)
	}
	if detached.Repeat.Kind != RepeatMonthly {
		t.Fatalf("expected the repeat rule left in place, got %+v", detached.Repeat)
	}
	if !instance.IsRecurrenceInstance {
		t.Fatal("expected the receiver to be unmodified")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.February || parsed.Day() != 29 {
		t.Fatalf("unexpected date: %v", parsed)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC anchoring, got %v", parsed.Location())
	}
	if got := FormatDate(parsed); got != "2024-02-29" {
		t.Fatalf("expected round trip, got %q", got)
	}

	for _, value := range []string{"", "2025-13-01", "2025-02-30", "10/30/2025", "2025-1-5"} {
		if _, err := ParseDate(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := MinuteOfDay(tc.value)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("expected %d for %q, got %d", tc.want, tc.value, got)
		}
	}

	for _, value := range []string{"", "24:00", "9:5", "noon"} {
		if _, err := MinuteOfDay(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestStartAt(t *testing.T) {
	t.Parallel()

	kst := time.FixedZone("KST", 9*60*60)
	e := Event{Form: Form{Date: "2025-10-08", StartTime: "14:00"}}

	got, err := e.StartAt(kst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.October, 8, 14, 0, 0, 0, kst)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := (Event{Form: Form{Date: "bad", StartTime: "14:00"}}).StartAt(kst); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := (Event{Form: Form{Date: "2025-10-08", StartTime: "bad"}}).StartAt(kst); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

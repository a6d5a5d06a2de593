package recurrence

import (
	"testing"
	"time"

	"github.com/example/personal-calendar/internal/event"
)

func BenchmarkExpanderExpand(b *testing.B) {
	expander := NewExpander(func() string { return "series-bench" })
	form := event.Form{
		Title:     "데일리 스탠드업",
		Date:      "2024-01-01",
		StartTime: "09:30",
		EndTime:   "09:45",
		Category:  "업무",
		Repeat:    event.RepeatRule{Kind: event.RepeatDaily, Interval: 1, EndDate: "2024-12-31"},
	}
	ceiling := time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		instances, err := expander.Expand(form, ceiling)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if len(instances) == 0 {
			b.Fatal("expected instances to be generated")
		}
	}
}

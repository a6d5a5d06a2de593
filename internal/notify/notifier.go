package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/personal-calendar/internal/event"
)

// DefaultPollSpec polls once per second, matching the cadence the display
// layer expects for upcoming-event checks.
const DefaultPollSpec = "* * * * * *"

// EventSource supplies the current event snapshot for each poll tick.
type EventSource interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
}

// Notifier drives the Scheduler on a cron cadence and forwards records to a
// sink. Ticks never overlap: the cron runner serializes job invocations, so
// the notified set needs no locking beyond single-writer discipline.
type Notifier struct {
	scheduler *Scheduler
	source    EventSource
	sink      func(Record)
	notified  *NotifiedSet
	now       func() time.Time
	logger    *slog.Logger
	runner    *cron.Cron
}

// NewNotifier wires a Notifier. The sink receives every emitted record; a
// nil sink drops records. When now is nil, time.Now is used.
func NewNotifier(scheduler *Scheduler, source EventSource, sink func(Record), now func() time.Time, logger *slog.Logger) *Notifier {
	if scheduler == nil {
		scheduler = NewScheduler(nil)
	}
	if sink == nil {
		sink = func(Record) {}
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		scheduler: scheduler,
		source:    source,
		sink:      sink,
		notified:  NewNotifiedSet(),
		now:       now,
		logger:    logger,
	}
}

// Start begins polling on the provided cron spec (seconds-granularity,
// DefaultPollSpec when empty). It returns an error for an unparseable spec.
func (n *Notifier) Start(ctx context.Context, spec string) error {
	if n == nil {
		return fmt.Errorf("notify: Notifier is nil")
	}
	if n.runner != nil {
		return fmt.Errorf("notify: notifier already started")
	}
	if spec == "" {
		spec = DefaultPollSpec
	}

	runner := cron.New(cron.WithSeconds(), cron.WithLocation(n.scheduler.location))
	if _, err := runner.AddFunc(spec, func() { n.tick(ctx) }); err != nil {
		return fmt.Errorf("notify: invalid poll spec %q: %w", spec, err)
	}

	n.runner = runner
	runner.Start()
	return nil
}

// Stop halts future polls. Each tick is synchronous and effectively
// instantaneous, so there is no in-flight work to cancel beyond waiting for
// the running tick to return.
func (n *Notifier) Stop() {
	if n == nil || n.runner == nil {
		return
	}
	stopCtx := n.runner.Stop()
	<-stopCtx.Done()
	n.runner = nil
}

// tick performs one poll: fetch the snapshot, evaluate the window predicate,
// deliver records, then mark delivered ids.
func (n *Notifier) tick(ctx context.Context) {
	if n.source == nil {
		return
	}
	events, err := n.source.ListEvents(ctx)
	if err != nil {
		n.logger.Error("failed to fetch event snapshot", "error", err)
		return
	}

	records := n.scheduler.Poll(events, n.now(), n.notified)
	for _, record := range records {
		n.sink(record)
		n.notified.Mark(record.EventID)
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/personal-calendar/internal/application"
	"github.com/example/personal-calendar/internal/config"
	"github.com/example/personal-calendar/internal/logging"
	"github.com/example/personal-calendar/internal/memstore"
	"github.com/example/personal-calendar/internal/notify"
	"github.com/example/personal-calendar/internal/recurrence"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	logger := logging.NewLogger(os.Stdout, 0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger = logging.NewLogger(os.Stdout, cfg.LogLevel)

	store := memstore.New(uuid.NewString)
	expander := recurrence.NewExpander(uuid.NewString)

	settings := application.Settings{
		HardCeiling:       cfg.HardCeiling,
		Categories:        cfg.Categories,
		NotificationLeads: cfg.NotificationLeads,
		Location:          cfg.Location,
	}
	service := application.NewEventServiceWithLogger(store, expander, settings, time.Now, logger)

	today, err := service.ListEvents(ctx, application.ListEventsParams{
		Period:    application.ListPeriodDay,
		Reference: time.Now().In(cfg.Location),
	})
	if err != nil {
		logger.Error("failed to list today's events", "error", err)
		os.Exit(1)
	}
	logger.Info("events scheduled today", "count", len(today))

	scheduler := notify.NewScheduler(cfg.Location)
	sink := func(record notify.Record) {
		logger.Info("notification",
			"event_id", record.EventID,
			"title", record.Title,
			"lead_minutes", record.Lead,
			"message", record.Message)
	}
	notifier := notify.NewNotifier(scheduler, store, sink, time.Now, logger)

	if err := notifier.Start(ctx, cfg.PollSpec); err != nil {
		logger.Error("failed to start notification polling", "error", err)
		os.Exit(1)
	}

	logger.Info("calendar core running",
		"timezone", cfg.Location.String(),
		"hard_ceiling", cfg.HardCeiling.Format("2006-01-02"),
		"poll_spec", cfg.PollSpec)

	<-ctx.Done()
	notifier.Stop()
	logger.Info("calendar core stopped")
}

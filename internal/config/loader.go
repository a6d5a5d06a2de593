package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/personal-calendar/internal/event"
)

// Config captures the injected constants the calendar core requires from its
// environment.
type Config struct {
	// Location is the zone in which event times and poll ticks are
	// interpreted.
	Location *time.Location
	// HardCeiling is the system-wide maximum recurrence generation date.
	HardCeiling time.Time
	// PollSpec is the cron expression (with seconds field) driving the
	// notification poll cadence.
	PollSpec string
	// Categories enumerates the selectable event categories.
	Categories []string
	// NotificationLeads enumerates the selectable lead times in minutes.
	NotificationLeads []int
	// LogLevel is the minimum level emitted by the process logger.
	LogLevel slog.Level
}

// fileConfig mirrors the YAML configuration file layout.
type fileConfig struct {
	Timezone          string   `yaml:"timezone"`
	HardCeilingDate   string   `yaml:"hard_ceiling_date"`
	PollSpec          string   `yaml:"poll_spec"`
	Categories        []string `yaml:"categories"`
	NotificationLeads []int    `yaml:"notification_leads"`
	LogLevel          string   `yaml:"log_level"`
}

const (
	defaultTimezone    = "Asia/Seoul"
	defaultHardCeiling = "2025-10-30"
	defaultPollSpec    = "* * * * * *"
)

func defaultCategories() []string {
	return []string{"업무", "개인", "가족", "기타"}
}

func defaultNotificationLeads() []int {
	return []int{1, 10, 60, 120, 1440}
}

// Load resolves configuration from an optional YAML file and CALENDAR_*
// environment overrides, applying defaults for everything left unset.
//
// When path is empty, CALENDAR_CONFIG is consulted; a missing file is not an
// error, only an unreadable or unparseable one. Invalid values are collected
// and reported together.
func Load(path string) (Config, error) {
	raw := fileConfig{
		Timezone:          defaultTimezone,
		HardCeilingDate:   defaultHardCeiling,
		PollSpec:          defaultPollSpec,
		Categories:        defaultCategories(),
		NotificationLeads: defaultNotificationLeads(),
		LogLevel:          "info",
	}

	if path == "" {
		path = strings.TrimSpace(os.Getenv("CALENDAR_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults apply when no file has been written yet.
		case err != nil:
			return Config{}, fmt.Errorf("설정 파일을 읽을 수 없습니다: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("설정 파일을 해석할 수 없습니다: %w", err)
			}
		}
	}

	applyEnvOverrides(&raw)

	invalid := make([]string, 0, 2)

	loc, err := time.LoadLocation(raw.Timezone)
	if err != nil {
		invalid = append(invalid, "timezone")
	}

	ceiling, err := event.ParseDate(raw.HardCeilingDate)
	if err != nil {
		invalid = append(invalid, "hard_ceiling_date")
	}

	if strings.TrimSpace(raw.PollSpec) == "" {
		invalid = append(invalid, "poll_spec")
	}

	if len(raw.Categories) == 0 {
		invalid = append(invalid, "categories")
	}

	leads := raw.NotificationLeads
	if len(leads) == 0 {
		invalid = append(invalid, "notification_leads")
	}
	for _, lead := range leads {
		if lead < 1 {
			invalid = append(invalid, "notification_leads")
			break
		}
	}

	level, err := parseLogLevel(raw.LogLevel)
	if err != nil {
		invalid = append(invalid, "log_level")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("설정 값이 올바르지 않습니다: %s", strings.Join(invalid, ", "))
	}

	return Config{
		Location:          loc,
		HardCeiling:       ceiling,
		PollSpec:          strings.TrimSpace(raw.PollSpec),
		Categories:        append([]string(nil), raw.Categories...),
		NotificationLeads: append([]int(nil), leads...),
		LogLevel:          level,
	}, nil
}

func applyEnvOverrides(raw *fileConfig) {
	if tz := strings.TrimSpace(os.Getenv("CALENDAR_TIMEZONE")); tz != "" {
		raw.Timezone = tz
	}
	if ceiling := strings.TrimSpace(os.Getenv("CALENDAR_HARD_CEILING")); ceiling != "" {
		raw.HardCeilingDate = ceiling
	}
	if spec := strings.TrimSpace(os.Getenv("CALENDAR_POLL_SPEC")); spec != "" {
		raw.PollSpec = spec
	}
	if categories := strings.TrimSpace(os.Getenv("CALENDAR_CATEGORIES")); categories != "" {
		raw.Categories = splitAndTrim(categories)
	}
	if leads := strings.TrimSpace(os.Getenv("CALENDAR_NOTIFICATION_LEADS")); leads != "" {
		parsed := make([]int, 0, 5)
		for _, value := range splitAndTrim(leads) {
			lead, err := strconv.Atoi(value)
			if err != nil {
				// Poison the list so validation reports the field.
				parsed = []int{0}
				break
			}
			parsed = append(parsed, lead)
		}
		raw.NotificationLeads = parsed
	}
	if level := strings.TrimSpace(os.Getenv("CALENDAR_LOG_LEVEL")); level != "" {
		raw.LogLevel = level
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", value)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/memstore"
	"github.com/example/personal-calendar/internal/scheduler"
)

// EventRepository captures the persistence interactions needed by the service.
// Identity assignment happens behind this interface, never in the service.
type EventRepository interface {
	CreateEvent(ctx context.Context, candidate event.Event) (event.Event, error)
	GetEvent(ctx context.Context, id string) (event.Event, error)
	UpdateEvent(ctx context.Context, updated event.Event) (event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]event.Event, error)
}

// RecurrenceExpander materializes a repeating form into dated instances.
type RecurrenceExpander interface {
	Expand(base event.Form, hardCeiling time.Time) ([]event.Event, error)
}

// EventService orchestrates validation, recurrence expansion, overlap
// detection and persistence for calendar events.
type EventService struct {
	events   EventRepository
	expander RecurrenceExpander
	settings Settings
	now      func() time.Time
	logger   *slog.Logger
}

// NewEventService wires dependencies for event operations.
func NewEventService(events EventRepository, expander RecurrenceExpander, settings Settings, now func() time.Time) *EventService {
	return NewEventServiceWithLogger(events, expander, settings, now, nil)
}

// NewEventServiceWithLogger wires dependencies and a base logger.
func NewEventServiceWithLogger(events EventRepository, expander RecurrenceExpander, settings Settings, now func() time.Time, logger *slog.Logger) *EventService {
	if now == nil {
		now = time.Now
	}
	if settings.Location == nil {
		settings.Location = kstLocation()
	}
	return &EventService{
		events:   events,
		expander: expander,
		settings: settings,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// CreateEvent validates the form, expands its recurrence rule and checks the
// candidate (and every expanded instance) for overlaps before persisting.
//
// When conflicts exist and ConfirmOverlaps is false, nothing is persisted and
// the conflicts are returned for the confirmation collaborator to present.
// Confirmation is all-or-nothing: continuing creates every instance.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (CreateEventResult, error) {
	if s == nil {
		return CreateEventResult{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return CreateEventResult{}, fmt.Errorf("event repository not configured")
	}

	form := params.Form

	vErr := &ValidationError{}
	validateEventCore(form, s.settings, vErr)
	if vErr.HasErrors() {
		return CreateEventResult{}, vErr
	}

	candidates, err := s.buildCandidates(form)
	if err != nil {
		return CreateEventResult{}, err
	}
	if len(candidates) == 0 {
		return CreateEventResult{}, nil
	}

	snapshot, err := s.events.ListEvents(ctx)
	if err != nil {
		return CreateEventResult{}, mapEventRepoError(err)
	}

	conflicts := unionOverlaps(candidates, snapshot)
	if len(conflicts) > 0 && !params.ConfirmOverlaps {
		return CreateEventResult{Conflicts: conflicts}, nil
	}

	created := make([]event.Event, 0, len(candidates))
	for _, candidate := range candidates {
		persisted, err := s.events.CreateEvent(ctx, candidate)
		if err != nil {
			return CreateEventResult{}, mapEventRepoError(err)
		}
		created = append(created, persisted)
	}

	serviceLogger(ctx, s.logger, "event", "create").Info("events created",
		"count", len(created),
		"repeat_kind", string(form.Repeat.Kind),
		"conflicts_confirmed", len(conflicts))

	return CreateEventResult{Created: created, Conflicts: conflicts}, nil
}

// UpdateEvent applies validation and overlap checking before updating one
// stored record. Editing a recurrence instance detaches it into a standalone
// single event; its siblings are never touched.
func (s *EventService) UpdateEvent(ctx context.Context, params UpdateEventParams) (UpdateEventResult, error) {
	if s == nil {
		return UpdateEventResult{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return UpdateEventResult{}, fmt.Errorf("event repository not configured")
	}

	existing, err := s.events.GetEvent(ctx, params.EventID)
	if err != nil {
		return UpdateEventResult{}, mapEventRepoError(err)
	}

	vErr := &ValidationError{}
	validateEventCore(params.Form, s.settings, vErr)
	if vErr.HasErrors() {
		return UpdateEventResult{}, vErr
	}

	updated := existing
	updated.Form = params.Form
	if existing.IsRecurrenceInstance {
		updated = updated.Detach()
	}

	snapshot, err := s.events.ListEvents(ctx)
	if err != nil {
		return UpdateEventResult{}, mapEventRepoError(err)
	}

	conflicts := scheduler.FindOverlaps(updated, snapshot)
	if len(conflicts) > 0 && !params.ConfirmOverlaps {
		return UpdateEventResult{Conflicts: conflicts}, nil
	}

	persisted, err := s.events.UpdateEvent(ctx, updated)
	if err != nil {
		return UpdateEventResult{}, mapEventRepoError(err)
	}

	serviceLogger(ctx, s.logger, "event", "update").Info("event updated",
		"event_id", persisted.ID,
		"detached", existing.IsRecurrenceInstance)

	return UpdateEventResult{Updated: persisted, Conflicts: conflicts}, nil
}

// DeleteEvent removes a single stored record. Deleting one instance of a
// series leaves its siblings in place.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return mapEventRepoError(err)
	}

	serviceLogger(ctx, s.logger, "event", "delete").Info("event deleted", "event_id", id)
	return nil
}

// ListEvents enumerates stored events, optionally constrained to a period
// window and filtered by a search term over title, description and location.
func (s *EventService) ListEvents(ctx context.Context, params ListEventsParams) ([]event.Event, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	snapshot, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	filtered := make([]event.Event, 0, len(snapshot))
	windowStart, windowEnd, bounded := s.periodWindow(params.Period, params.Reference)
	term := strings.ToLower(strings.TrimSpace(params.SearchTerm))

	for _, candidate := range snapshot {
		if bounded && (candidate.Date < windowStart || candidate.Date >= windowEnd) {
			continue
		}
		if term != "" && !matchesSearch(candidate, term) {
			continue
		}
		filtered = append(filtered, candidate)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		if filtered[i].StartTime != filtered[j].StartTime {
			return filtered[i].StartTime < filtered[j].StartTime
		}
		return filtered[i].ID < filtered[j].ID
	})

	if len(filtered) == 0 {
		return nil, nil
	}
	return filtered, nil
}

// FindSeriesInstances returns every stored instance sharing the series
// token, ordered by instance index.
func (s *EventService) FindSeriesInstances(ctx context.Context, seriesID string) ([]event.Event, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}
	if seriesID == "" {
		return nil, nil
	}

	snapshot, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	instances := make([]event.Event, 0)
	for _, candidate := range snapshot {
		if candidate.SeriesID == seriesID {
			instances = append(instances, candidate)
		}
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].InstanceIndex < instances[j].InstanceIndex
	})

	if len(instances) == 0 {
		return nil, nil
	}
	return instances, nil
}

// buildCandidates turns a validated form into the records a create attempt
// would persist: the expanded instances for a repeating form, or the single
// event itself.
func (s *EventService) buildCandidates(form event.Form) ([]event.Event, error) {
	if form.Repeat.Kind == event.RepeatNone {
		return []event.Event{{Form: form}}, nil
	}
	if s.expander == nil {
		return nil, fmt.Errorf("recurrence expander not configured")
	}
	return s.expander.Expand(form, s.settings.HardCeiling)
}

// unionOverlaps runs the detector once per candidate and unions the results,
// preserving snapshot order without duplicates.
func unionOverlaps(candidates []event.Event, snapshot []event.Event) []event.Event {
	conflicting := make(map[string]struct{})
	for _, candidate := range candidates {
		for _, overlap := range scheduler.FindOverlaps(candidate, snapshot) {
			conflicting[overlap.ID] = struct{}{}
		}
	}
	if len(conflicting) == 0 {
		return nil
	}

	union := make([]event.Event, 0, len(conflicting))
	for _, existing := range snapshot {
		if _, ok := conflicting[existing.ID]; ok {
			union = append(union, existing)
		}
	}
	return union
}

func matchesSearch(candidate event.Event, term string) bool {
	return strings.Contains(strings.ToLower(candidate.Title), term) ||
		strings.Contains(strings.ToLower(candidate.Description), term) ||
		strings.Contains(strings.ToLower(candidate.Location), term)
}

func (s *EventService) periodWindow(period ListPeriod, reference time.Time) (string, string, bool) {
	if period == ListPeriodNone {
		return "", "", false
	}

	loc := s.settings.Location
	if loc == nil {
		loc = kstLocation()
	}

	var start, end time.Time
	switch period {
	case ListPeriodDay:
		start = startOfDay(reference, loc)
		end = start.AddDate(0, 0, 1)
	case ListPeriodWeek:
		start = startOfWeek(reference, loc)
		end = start.AddDate(0, 0, 7)
	case ListPeriodMonth:
		start = startOfMonth(reference, loc)
		end = start.AddDate(0, 1, 0)
	default:
		return "", "", false
	}

	// Event dates are civil "YYYY-MM-DD" strings, which order lexically.
	return start.Format(event.DateLayout), end.Format(event.DateLayout), true
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func startOfWeek(t time.Time, loc *time.Location) time.Time {
	start := startOfDay(t, loc)
	weekday := int(start.Weekday())
	// Adjust so Monday is start of week. In Go, Monday == 1, Sunday == 0.
	offset := (weekday + 6) % 7
	return start.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time, loc *time.Location) time.Time {
	start := startOfDay(t, loc)
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
}

func kstLocation() *time.Location {
	return time.FixedZone("KST", 9*60*60)
}

func validateEventCore(form event.Form, settings Settings, vErr *ValidationError) {
	if strings.TrimSpace(form.Title) == "" {
		vErr.add("title", "title is required")
	}

	if strings.TrimSpace(form.Date) == "" {
		vErr.add("date", "date is required")
	} else if _, err := event.ParseDate(form.Date); err != nil {
		vErr.add("date", "date must use the YYYY-MM-DD format")
	}

	startValid := false
	if strings.TrimSpace(form.StartTime) == "" {
		vErr.add("start_time", "start time is required")
	} else if _, err := event.MinuteOfDay(form.StartTime); err != nil {
		vErr.add("start_time", "start time must use the HH:MM format")
	} else {
		startValid = true
	}

	endValid := false
	if strings.TrimSpace(form.EndTime) == "" {
		vErr.add("end_time", "end time is required")
	} else if _, err := event.MinuteOfDay(form.EndTime); err != nil {
		vErr.add("end_time", "end time must use the HH:MM format")
	} else {
		endValid = true
	}

	if startValid && endValid {
		start, _ := event.MinuteOfDay(form.StartTime)
		end, _ := event.MinuteOfDay(form.EndTime)
		if start >= end {
			vErr.add("time", "start time must be before end time")
		}
	}

	if len(settings.Categories) > 0 && !containsString(settings.Categories, form.Category) {
		vErr.add("category", "unknown category")
	}

	if !form.Repeat.Kind.Valid() {
		vErr.add("repeat_kind", "unsupported repeat kind")
	} else if form.Repeat.Kind != event.RepeatNone {
		if form.Repeat.Interval < 1 {
			vErr.add("repeat_interval", "interval must be at least 1")
		}
		if form.Repeat.EndDate != "" {
			if _, err := event.ParseDate(form.Repeat.EndDate); err != nil {
				vErr.add("repeat_end_date", "end date must use the YYYY-MM-DD format")
			}
		}
	}

	if len(settings.NotificationLeads) > 0 && !containsInt(settings.NotificationLeads, form.NotificationLead) {
		vErr.add("notification_lead", "unsupported notification lead time")
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func containsInt(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func mapEventRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, memstore.ErrDuplicateID) {
		return ErrAlreadyExists
	}
	return err
}

package schedule

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Config holds the scheduling parameters.
type Config struct {
	// Workday is the daily window and its time zone.
	Workday Workday

	// MaxSearchDays caps how many working days one item may span.
	MaxSearchDays int

	// HoursPolicy is constants.HoursPolicyClamp or constants.HoursPolicyReject.
	HoursPolicy string

	// DefaultHours applies when a record carries no hours at all.
	DefaultHours float64

	// MinHours is the floor for every item.
	MinHours float64

	// MaxUnitHours caps one week-hours entry.
	MaxUnitHours float64
}

// DefaultConfig returns the standard 08:30-16:45 local workday settings.
func DefaultConfig() Config {
	return Config{
		Workday:       DefaultWorkday(),
		MaxSearchDays: constants.DefaultMaxSearchDays,
		HoursPolicy:   constants.HoursPolicyClamp,
		DefaultHours:  constants.DefaultHours,
		MinHours:      constants.MinHours,
		MaxUnitHours:  constants.MaxUnitHours,
	}
}

// maxHorizon bounds horizon so it stays representable as a time.Duration.
const maxHorizon = time.Duration(math.MaxInt64 / 2)

// horizon is the most work one item can receive: MaxSearchDays full
// working days. Unset values fall back to the defaults.
func (c Config) horizon() time.Duration {
	days := c.MaxSearchDays
	if days <= 0 {
		days = constants.DefaultMaxSearchDays
	}
	length := c.Workday.Length()
	if length <= 0 {
		length = DefaultWorkday().Length()
	}
	if time.Duration(days) > maxHorizon/length {
		return maxHorizon
	}
	return time.Duration(days) * length
}

// Failure reports a work item that could not be placed.
// It does not affect the placement of other items.
type Failure struct {
	Item domain.WorkItem
	Err  error
}

// Error returns the user-facing warning for the failure.
func (f Failure) Error() string {
	label := f.Item.Label
	if label == "" {
		label = f.Item.TaskID
	}
	return fmt.Sprintf("Task %s doesn't fit in any available slot", label)
}

// Unwrap exposes the underlying sentinel.
func (f Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one scheduling run.
type Result struct {
	// Events holds pre-scheduled and packed events ordered by start, person and id.
	Events   []domain.ScheduledEvent
	Failures []Failure
	Dropped  []Dropped
}

// Scheduler packs work items into per-person working-day slots.
// A Scheduler holds no state between runs and is safe for concurrent use.
type Scheduler struct {
	config Config
	logger zerolog.Logger
}

// NewScheduler creates a scheduler. Zero-valued numeric settings fall back to defaults.
func NewScheduler(cfg Config, logger zerolog.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.Workday.End <= cfg.Workday.Start {
		cfg.Workday = def.Workday
	}
	if cfg.MaxSearchDays <= 0 {
		cfg.MaxSearchDays = def.MaxSearchDays
	}
	if cfg.HoursPolicy == "" {
		cfg.HoursPolicy = def.HoursPolicy
	}
	if cfg.DefaultHours <= 0 {
		cfg.DefaultHours = def.DefaultHours
	}
	if cfg.MinHours <= 0 {
		cfg.MinHours = def.MinHours
	}
	if cfg.MaxUnitHours <= 0 {
		cfg.MaxUnitHours = def.MaxUnitHours
	}
	return &Scheduler{config: cfg, logger: logger}
}

// ScheduleTasks schedules records with the default configuration and
// returns only the events. Failures and dropped records are discarded.
func ScheduleTasks(records []domain.TaskRecord) []domain.ScheduledEvent {
	return NewScheduler(DefaultConfig(), zerolog.Nop()).Schedule(records).Events
}

// Schedule normalizes records, registers pre-scheduled events and packs the
// remaining work in priority order.
func (s *Scheduler) Schedule(records []domain.TaskRecord) Result {
	norm := Normalize(records, s.config)
	for _, d := range norm.Dropped {
		s.logger.Warn().
			Err(d.Err).
			Int("index", d.Index).
			Str("task_id", d.ID).
			Msg("task record dropped")
	}

	book := newCursorBook()
	events := make([]domain.ScheduledEvent, 0, len(norm.Prescheduled)+len(norm.Items))

	for _, ev := range norm.Prescheduled {
		events = append(events, ev)
		if !ev.End.After(ev.Start) {
			s.logger.Warn().
				Str("event_id", ev.ID).
				Time("start", ev.Start).
				Time("end", ev.End).
				Msg("pre-scheduled task ends before it starts, not reserving time")
			continue
		}
		// An event running past midnight blocks every day it touches.
		for d := s.config.Workday.Day(ev.Start); d.Before(ev.End); d = d.AddDate(0, 0, 1) {
			book.reserve(newPersonDay(ev.PersonKey, d), ev.End)
		}
	}

	var failures []Failure
	for _, item := range norm.Items {
		placed, err := s.place(book, item)
		if err != nil {
			f := Failure{Item: item, Err: err}
			s.logger.Warn().
				Err(err).
				Str("task_id", item.TaskID).
				Str("person", item.PersonKey).
				Float64("hours", item.RequestedHours).
				Msg(f.Error())
			failures = append(failures, f)
			continue
		}
		events = append(events, placed...)
	}

	SortEvents(events)

	s.logger.Debug().
		Int("records", len(records)).
		Int("events", len(events)).
		Int("failures", len(failures)).
		Int("dropped", len(norm.Dropped)).
		Msg("schedule complete")

	return Result{Events: events, Failures: failures, Dropped: norm.Dropped}
}

// place packs one item starting on its anchor day, carrying any remainder
// to following working days. Placements are committed only if the whole
// item fits within MaxSearchDays working days.
func (s *Scheduler) place(book *cursorBook, item domain.WorkItem) ([]domain.ScheduledEvent, error) {
	wd := s.config.Workday
	tx := book.begin()
	anchorKey := item.AnchorDate.Format(constants.DateLayout)

	var events []domain.ScheduledEvent
	remaining := item.Duration
	day := wd.FirstWorkingDay(item.AnchorDate)

	for searched := 0; remaining > 0; searched++ {
		if searched >= s.config.MaxSearchDays {
			return nil, tcerrors.Wrapf(tcerrors.ErrHorizonExceeded,
				"task %s for %s: %s left after %d working days", item.TaskID, item.PersonKey, remaining, s.config.MaxSearchDays)
		}

		key := newPersonDay(item.PersonKey, day)
		dayStart, dayEnd := wd.Bounds(day)
		cursor := tx.cursor(key, dayStart)

		placed, left, ok := packDay(cursor, dayEnd, remaining)
		if ok {
			tx.advance(key, placed.End)
			remaining = left
			events = append(events, newEvent(item, placed, anchorKey, len(events)+1))
		}
		day = wd.NextWorkingDay(day)
	}

	tx.commit()
	return events, nil
}

func newEvent(item domain.WorkItem, placed span, anchorKey string, part int) domain.ScheduledEvent {
	return domain.ScheduledEvent{
		TaskRecord: item.Record,
		ID:         fmt.Sprintf("%s-%s-%d", item.TaskID, anchorKey, part),
		PersonKey:  item.PersonKey,
		TaskID:     item.TaskID,
		Start:      placed.Start,
		End:        placed.End,
		Duration:   placed.End.Sub(placed.Start).Hours(),
		DateKey:    placed.Start.Format(constants.DateLayout),
	}
}

// SortEvents orders events by start, then person key, then id.
func SortEvents(events []domain.ScheduledEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.PersonKey != b.PersonKey {
			return a.PersonKey < b.PersonKey
		}
		return strings.Compare(a.ID, b.ID) < 0
	})
}

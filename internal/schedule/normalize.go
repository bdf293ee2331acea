package schedule

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Dropped records a task record the normalizer could not turn into work.
type Dropped struct {
	// Index is the record's position in the input.
	Index int
	ID    string
	Err   error
}

// Normalized is the normalizer's output.
type Normalized struct {
	// Prescheduled holds records that already carried a start and end.
	Prescheduled []domain.ScheduledEvent

	// Items holds unscheduled work in priority order.
	Items []domain.WorkItem

	Dropped []Dropped
}

type dedupeKey struct {
	taskID string
	date   string
}

// Normalize converts raw records into pre-scheduled events and work items.
// It never fails as a whole: unusable records are reported in Dropped.
func Normalize(records []domain.TaskRecord, cfg Config) Normalized {
	var (
		out  Normalized
		seen = make(map[dedupeKey]struct{})
		loc  = cfg.Workday.location()
	)

	for i := range records {
		rec := records[i]

		if rec.IsPrescheduled() {
			ev := prescheduledEvent(rec, i, loc)
			if rec.TaskID() != "" {
				seen[dedupeKey{taskID: ev.TaskID, date: ev.DateKey}] = struct{}{}
			}
			out.Prescheduled = append(out.Prescheduled, ev)
			continue
		}

		items, err := workItems(rec, i, cfg)
		if err != nil {
			out.Dropped = append(out.Dropped, Dropped{Index: i, ID: rec.ID, Err: err})
			continue
		}

		for _, item := range items {
			if rec.TaskID() != "" {
				key := dedupeKey{taskID: item.TaskID, date: item.AnchorDate.Format(constants.DateLayout)}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			out.Items = append(out.Items, item)
		}
	}

	sort.SliceStable(out.Items, func(a, b int) bool {
		return out.Items[a].Priority.Before(out.Items[b].Priority)
	})
	return out
}

// taskIDFor returns the record's base id, or a positional id when it has none.
func taskIDFor(rec *domain.TaskRecord, index int) string {
	if id := rec.TaskID(); id != "" {
		return id
	}
	return "record" + strconv.Itoa(index)
}

func prescheduledEvent(rec domain.TaskRecord, index int, loc *time.Location) domain.ScheduledEvent {
	start := rec.Start.In(loc)
	end := rec.End.In(loc)
	dateKey := start.Format(constants.DateLayout)
	taskID := taskIDFor(&rec, index)

	return domain.ScheduledEvent{
		TaskRecord:   rec,
		ID:           taskID + "-" + dateKey + "-0",
		PersonKey:    rec.PersonKey(),
		TaskID:       taskID,
		Start:        start,
		End:          end,
		Duration:     end.Sub(start).Hours(),
		DateKey:      dateKey,
		Prescheduled: true,
	}
}

// workItems expands one unscheduled record. Populated week-hours entries
// each become an item; otherwise the record is a single item.
func workItems(rec domain.TaskRecord, index int, cfg Config) ([]domain.WorkItem, error) {
	loc := cfg.Workday.location()

	var populated []domain.WeekHours
	for _, wh := range rec.WeekHours {
		if wh.IsPopulated() {
			populated = append(populated, wh)
		}
	}

	if len(populated) > 0 {
		items := make([]domain.WorkItem, 0, len(populated))
		for _, wh := range populated {
			hours := math.Min(math.Max(wh.Hours.Value, cfg.MinHours), cfg.MaxUnitHours)
			items = append(items, newWorkItem(rec, index, wh.Date.CalendarDate(loc), hours, cfg))
		}
		return items, nil
	}

	date := rec.Date
	if !date.Valid && len(rec.WeekHours) > 0 {
		date = rec.WeekHours[0].Date
	}
	if !date.Valid {
		date = rec.CreatedAt
	}
	if !date.Valid {
		return nil, tcerrors.Wrapf(tcerrors.ErrNoResolvableDate, "task %s", taskIDFor(&rec, index))
	}

	hours, err := resolveHours(rec, cfg)
	if err != nil {
		return nil, tcerrors.Wrapf(err, "task %s", taskIDFor(&rec, index))
	}
	return []domain.WorkItem{newWorkItem(rec, index, date.CalendarDate(loc), hours, cfg)}, nil
}

// resolveHours picks approvedHours, then hours, then the default, and
// applies the hours policy when a value is present but unusable.
func resolveHours(rec domain.TaskRecord, cfg Config) (float64, error) {
	var hours float64
	switch {
	case rec.ApprovedHours.Positive():
		hours = rec.ApprovedHours.Value
	case rec.Hours.Positive():
		hours = rec.Hours.Value
	case rec.ApprovedHours.Set || rec.Hours.Set:
		if cfg.HoursPolicy == constants.HoursPolicyReject {
			return 0, tcerrors.ErrInvalidHours
		}
		hours = cfg.MinHours
	default:
		hours = cfg.DefaultHours
	}
	return math.Max(hours, cfg.MinHours), nil
}

func newWorkItem(rec domain.TaskRecord, index int, anchor time.Time, hours float64, cfg Config) domain.WorkItem {
	loc := cfg.Workday.location()
	priority := anchor
	if rec.CreatedAt.Valid {
		priority = rec.CreatedAt.In(loc)
	}
	duration := itemDuration(hours, cfg.horizon())

	return domain.WorkItem{
		PersonKey:      rec.PersonKey(),
		TaskID:         taskIDFor(&rec, index),
		RequestedHours: hours,
		Duration:       duration,
		AnchorDate:     anchor,
		Priority:       priority,
		Label:          rec.Task,
		Project:        rec.Project,
		ProjectCode:    rec.ProjectCode,
		Department:     rec.Department,
		Record:         rec,
	}
}

// itemDuration rounds hours to whole minutes. Requests longer than horizon
// become one minute past it, so they fail placement with
// ErrHorizonExceeded instead of overflowing time.Duration.
func itemDuration(hours float64, horizon time.Duration) time.Duration {
	if hours*float64(time.Hour) > float64(horizon) {
		return horizon + time.Minute
	}
	duration := time.Duration(math.Round(hours*60)) * time.Minute
	if duration < time.Minute {
		duration = time.Minute
	}
	return duration
}

package schedule

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Filter selects events or records. Empty fields match everything; all
// non-empty fields must match. Text fields match as case-insensitive
// substrings; PersonKey must match exactly after case folding.
type Filter struct {
	PersonName  string
	Project     string
	ProjectCode string
	Department  string

	// PersonKey restricts results to one person (the "my tasks" view).
	PersonKey string

	// Date is a calendar day as YYYY-MM-DD.
	Date string
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Validate checks the date field.
func (f Filter) Validate() error {
	if f.Date == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateLayout, f.Date); err != nil {
		return tcerrors.Wrapf(tcerrors.ErrInvalidFilterDate, "%q must be YYYY-MM-DD", f.Date)
	}
	return nil
}

// FilterEvents returns the events matching f, keeping their order.
// An event's date is the calendar day of its start in the scheduler's location.
func FilterEvents(events []domain.ScheduledEvent, f Filter) ([]domain.ScheduledEvent, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	m := newMatcher(f)
	out := make([]domain.ScheduledEvent, 0, len(events))
	for i := range events {
		ev := &events[i]
		if m.match(&ev.TaskRecord, ev.PersonKey, ev.DateKey) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

// FilterRecords returns the raw records matching f, keeping their order.
// A record's date is its date field, else its first week-hours date.
func FilterRecords(records []domain.TaskRecord, f Filter) ([]domain.TaskRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	m := newMatcher(f)
	out := make([]domain.TaskRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if m.match(rec, rec.PersonKey(), rec.FilterDate().DateKey()) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// Week returns the Monday-to-Monday range containing day in loc.
func Week(day time.Time, loc *time.Location) (from, to time.Time) {
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	offset := (int(d.Weekday()) + 6) % 7
	from = d.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 7)
}

// InRange returns the events starting in [from, to), keeping their order.
func InRange(events []domain.ScheduledEvent, from, to time.Time) []domain.ScheduledEvent {
	out := make([]domain.ScheduledEvent, 0, len(events))
	for _, ev := range events {
		if !ev.Start.Before(from) && ev.Start.Before(to) {
			out = append(out, ev)
		}
	}
	return out
}

// matcher holds the folded filter terms. A cases.Caser is not safe for
// concurrent use, so each call builds its own.
type matcher struct {
	fold   cases.Caser
	filter Filter
}

func newMatcher(f Filter) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.filter = Filter{
		PersonName:  m.folded(f.PersonName),
		Project:     m.folded(f.Project),
		ProjectCode: m.folded(f.ProjectCode),
		Department:  m.folded(f.Department),
		PersonKey:   m.folded(f.PersonKey),
		Date:        strings.TrimSpace(f.Date),
	}
	return m
}

func (m *matcher) folded(s string) string {
	return m.fold.String(strings.TrimSpace(s))
}

func (m *matcher) contains(value, term string) bool {
	return term == "" || strings.Contains(m.folded(value), term)
}

func (m *matcher) match(rec *domain.TaskRecord, personKey, dateKey string) bool {
	f := m.filter
	if f.PersonKey != "" && m.folded(personKey) != f.PersonKey {
		return false
	}
	if f.Date != "" && dateKey != f.Date {
		return false
	}
	return m.contains(rec.DisplayName(), f.PersonName) &&
		m.contains(rec.Project, f.Project) &&
		m.contains(rec.ProjectCode, f.ProjectCode) &&
		m.contains(rec.Department, f.Department)
}

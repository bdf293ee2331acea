// Package schedule packs approved task requests into non-overlapping
// working-day slots for each person.
//
// The scheduler is pure: it reads no clock, performs no I/O and keeps all
// state local to a single call, so the same input always yields the same
// calendar. Callers are responsible for status filtering.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/config, internal/source, internal/tui
package schedule

import (
	"fmt"
	"time"

	"github.com/teamcal/teamcal/internal/constants"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Workday is the daily window in which work may be placed.
// Start and End are offsets from local midnight; bounds are rebuilt from
// wall-clock fields so days with a DST transition keep the same window.
type Workday struct {
	Start    time.Duration
	End      time.Duration
	Location *time.Location
}

// DefaultWorkday returns the 08:30-16:45 window in the local time zone.
func DefaultWorkday() Workday {
	return Workday{
		Start:    time.Duration(constants.WorkdayStartHour)*time.Hour + time.Duration(constants.WorkdayStartMinute)*time.Minute,
		End:      time.Duration(constants.WorkdayEndHour)*time.Hour + time.Duration(constants.WorkdayEndMinute)*time.Minute,
		Location: time.Local,
	}
}

// NewWorkday builds a window from "HH:MM" clock strings.
func NewWorkday(start, end string, loc *time.Location) (Workday, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Workday{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Workday{}, err
	}
	if e <= s {
		return Workday{}, tcerrors.Wrapf(tcerrors.ErrConfigInvalidWorkday, "end %s is not after start %s", end, start)
	}
	if loc == nil {
		loc = time.Local
	}
	return Workday{Start: s, End: e, Location: loc}, nil
}

// ParseClock parses an "HH:MM" time of day into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(constants.ClockLayout, s)
	if err != nil {
		return 0, tcerrors.Wrapf(tcerrors.ErrConfigInvalidWorkday, "time of day %q must be HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Length returns the usable time in one working day.
func (w Workday) Length() time.Duration {
	return w.End - w.Start
}

// String formats the window as "08:30-16:45 Local".
func (w Workday) String() string {
	return fmt.Sprintf("%s-%s %s", formatOffset(w.Start), formatOffset(w.End), w.location())
}

// Day returns midnight of t's calendar day in the workday's location.
func (w Workday) Day(t time.Time) time.Time {
	t = t.In(w.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Bounds returns the start and end instants of the window on day.
func (w Workday) Bounds(day time.Time) (start, end time.Time) {
	d := w.Day(day)
	return w.at(d, w.Start), w.at(d, w.End)
}

// IsWorkingDay reports whether day falls Monday to Friday.
func (w Workday) IsWorkingDay(day time.Time) bool {
	switch w.Day(day).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// NextWorkingDay returns the first working day strictly after day.
func (w Workday) NextWorkingDay(day time.Time) time.Time {
	d := w.Day(day)
	for {
		d = d.AddDate(0, 0, 1)
		if w.IsWorkingDay(d) {
			return d
		}
	}
}

// FirstWorkingDay returns day itself when it is a working day, else the next one.
func (w Workday) FirstWorkingDay(day time.Time) time.Time {
	d := w.Day(day)
	if w.IsWorkingDay(d) {
		return d
	}
	return w.NextWorkingDay(d)
}

func (w Workday) at(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, w.location())
}

func (w Workday) location() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}

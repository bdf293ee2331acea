package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
)

// EventLayout controls how event times and dates are printed.
type EventLayout struct {
	// TimeFormat is a Go time layout for start/end, e.g. "15:04".
	TimeFormat string
	// DateFormat is a Go time layout for the day column.
	DateFormat string
	// Location converts event instants before formatting. Nil keeps each
	// event's own location.
	Location *time.Location
}

// DefaultEventLayout returns 24h clock times and "Mon 2006-01-02" dates.
func DefaultEventLayout() EventLayout {
	return EventLayout{
		TimeFormat: constants.ClockLayout,
		DateFormat: "Mon 2006-01-02",
	}
}

func (l EventLayout) normalized() EventLayout {
	def := DefaultEventLayout()
	if l.TimeFormat == "" {
		l.TimeFormat = def.TimeFormat
	}
	if l.DateFormat == "" {
		l.DateFormat = def.DateFormat
	}
	return l
}

func (l EventLayout) in(t time.Time) time.Time {
	if l.Location != nil {
		return t.In(l.Location)
	}
	return t
}

// Column indexes of the event table.
const (
	eventColDate = iota
	eventColTime
	eventColAssignee
	eventColTask
	eventColProject
	eventColCode
	eventColDepartment
	eventColHours
)

func eventColumns() []TableColumn {
	return []TableColumn{
		eventColDate:       {Name: "DATE"},
		eventColTime:       {Name: "TIME"},
		eventColAssignee:   {Name: "ASSIGNEE", MaxWidth: 24},
		eventColTask:       {Name: "TASK", MaxWidth: 40},
		eventColProject:    {Name: "PROJECT", MaxWidth: 28},
		eventColCode:       {Name: "CODE", MaxWidth: 12},
		eventColDepartment: {Name: "DEPT", MaxWidth: 8},
		eventColHours:      {Name: "HOURS", Align: AlignRight},
	}
}

// EventTable lays events out one row each, grouped by day. The date cell is
// printed only on the first row of each day and the department cell is
// tinted with the department color. Events are expected in schedule order.
func EventTable(events []domain.ScheduledEvent, layout EventLayout, opts ...TableOption) *Table {
	layout = layout.normalized()
	t := NewTable(eventColumns(), opts...)

	lastDay := ""
	for i := range events {
		e := &events[i]
		start := layout.in(e.Start)
		day := start.Format(layout.DateFormat)
		dateCell := day
		if day == lastDay {
			dateCell = ""
		}
		lastDay = day

		cells := []string{
			eventColDate:       dateCell,
			eventColTime:       start.Format(layout.TimeFormat) + "-" + layout.in(e.End).Format(layout.TimeFormat),
			eventColAssignee:   Assignee(e),
			eventColTask:       eventLabel(e),
			eventColProject:    e.Project,
			eventColCode:       e.ProjectCode,
			eventColDepartment: DepartmentLabel(e.Department),
			eventColHours:      FormatHours(e.Length().Hours()),
		}
		t.AddStyledRow(cells, eventColDepartment, DepartmentStyle(e.Department))
	}
	return t
}

func eventLabel(e *domain.ScheduledEvent) string {
	label := strings.TrimSpace(e.Task)
	if label == "" {
		label = e.TaskID
	}
	if e.Prescheduled {
		label += " *"
	}
	return label
}

// Assignee returns the person shown for an event: the requested name when
// present, otherwise the email local part title-cased ("jane.doe" → "Jane Doe").
func Assignee(e *domain.ScheduledEvent) string {
	if name := strings.TrimSpace(e.RequestedName); name != "" {
		return name
	}
	local := e.DisplayName()
	if local == "" {
		return e.PersonKey
	}
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// DepartmentLabel upper-cases a department name for display.
func DepartmentLabel(department string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(department))
}

// FormatHours prints hours with at most two decimals and no trailing zeros.
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// EventSummary describes a schedule in one line, e.g.
// "5 events for 2 people across 3 days (18.5 hours)".
func EventSummary(events []domain.ScheduledEvent) string {
	people := make(map[string]struct{})
	days := make(map[string]struct{})
	var hours float64
	for i := range events {
		people[events[i].PersonKey] = struct{}{}
		days[events[i].DateKey] = struct{}{}
		hours += events[i].Length().Hours()
	}
	return fmt.Sprintf("%s for %s across %s (%s hours)",
		plural(len(events), "event"), plural(len(people), "person"),
		plural(len(days), "day"), FormatHours(hours))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if noun == "person" {
		return strconv.Itoa(n) + " people"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

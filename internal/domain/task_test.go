package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// exampleRecordJSON is a record shaped the way the dashboard backend returns it.
const exampleRecordJSON = `{
    "_id": "65a1f0c2e4b0a1b2c3d4e5f6-2024-01-15",
    "email": "  Ana@Studio.Example ",
    "requestedName": "Ana",
    "Task": "Facade model",
    "project": "Harbor Tower",
    "projectCode": "HT-01",
    "department": "BIM",
    "status": "Approved",
    "date": null,
    "weekHours": [
        {"day": "Monday", "date": "2024-01-15T00:00:00.000Z", "hours": 4},
        {"day": "Tuesday", "date": null, "hours": "3.5"}
    ],
    "hours": "6",
    "approvedHours": null,
    "createdAt": "2024-01-10T09:12:00.000Z"
}`

func TestTaskRecord_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var rec TaskRecord
	require.NoError(t, json.Unmarshal([]byte(exampleRecordJSON), &rec))

	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6-2024-01-15", rec.ID)
	assert.Equal(t, "Facade model", rec.Task)
	assert.Equal(t, TaskStatusApproved, rec.Status)
	assert.False(t, rec.Date.Valid)
	assert.False(t, rec.ApprovedHours.Set)
	assert.Equal(t, NewHours(6), rec.Hours)

	require.Len(t, rec.WeekHours, 2)
	assert.True(t, rec.WeekHours[0].IsPopulated())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), rec.WeekHours[0].Date.Time)
	assert.False(t, rec.WeekHours[1].IsPopulated())
	assert.InDelta(t, 3.5, rec.WeekHours[1].Hours.Value, 1e-9)

	assert.True(t, rec.CreatedAt.Valid)
	assert.False(t, rec.IsPrescheduled())
}

func TestTaskRecord_Identity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rec        TaskRecord
		wantKey    string
		wantName   string
		wantTaskID string
	}{
		{
			name:       "email wins over name",
			rec:        TaskRecord{ID: "abc-2024-01-15", Email: " Ana@Studio.Example ", RequestedName: "Ana"},
			wantKey:    "ana@studio.example",
			wantName:   "Ana",
			wantTaskID: "abc",
		},
		{
			name:       "name fallback",
			rec:        TaskRecord{ID: "abc", RequestedName: " Bo Lee "},
			wantKey:    "bo lee",
			wantName:   "Bo Lee",
			wantTaskID: "abc",
		},
		{
			name:       "display name from email",
			rec:        TaskRecord{Email: "cy@studio.example"},
			wantKey:    "cy@studio.example",
			wantName:   "cy",
			wantTaskID: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantKey, tc.rec.PersonKey())
			assert.Equal(t, tc.wantName, tc.rec.DisplayName())
			assert.Equal(t, tc.wantTaskID, tc.rec.TaskID())
		})
	}
}

func TestTaskRecord_FilterDate(t *testing.T) {
	t.Parallel()

	date := NewFlexDate(2024, time.January, 16)
	week := NewFlexDate(2024, time.January, 15)

	assert.Equal(t, date, (&TaskRecord{Date: date, WeekHours: []WeekHours{{Date: week}}}).FilterDate())
	assert.Equal(t, week, (&TaskRecord{WeekHours: []WeekHours{{Date: week}}}).FilterDate())
	assert.False(t, (&TaskRecord{}).FilterDate().Valid)
}

func TestApprovedOnly(t *testing.T) {
	t.Parallel()

	records := []TaskRecord{
		{ID: "a", Status: TaskStatusApproved},
		{ID: "b", Status: TaskStatusPending},
		{ID: "c", Status: TaskStatusRejected},
		{ID: "d", Status: TaskStatusApproved},
	}

	got := ApprovedOnly(records)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}

func TestParseFlexTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in           string
		wantValid    bool
		wantDateOnly bool
		wantFloating bool
		want         time.Time
	}{
		{in: "2024-01-15", wantValid: true, wantDateOnly: true, wantFloating: true, want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{in: "2024-01-15T10:00:00.000Z", wantValid: true, want: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{in: "2024-01-15T10:00:00+02:00", wantValid: true, want: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		{in: "2024-01-15T10:30:00", wantValid: true, wantFloating: true, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-15T10:30", wantValid: true, wantFloating: true, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: ""},
		{in: "null"},
		{in: "next tuesday"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got := ParseFlexTime(tc.in)
			assert.Equal(t, tc.wantValid, got.Valid)
			if !tc.wantValid {
				return
			}
			assert.Equal(t, tc.wantDateOnly, got.DateOnly)
			assert.Equal(t, tc.wantFloating, got.Floating)
			assert.True(t, tc.want.Equal(got.Time), "got %s", got.Time)
		})
	}
}

func TestFlexTime_In(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*3600)

	floating := ParseFlexTime("2024-01-15T09:00:00")
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, loc), floating.In(loc))

	zoned := ParseFlexTime("2024-01-15T14:00:00Z")
	assert.True(t, zoned.In(loc).Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, loc)))

	date := ParseFlexTime("2024-01-15")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), date.CalendarDate(loc))

	// Midnight UTC stays on its written date even west of Greenwich.
	midnight := ParseFlexTime("2024-01-15T00:00:00.000Z")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), midnight.CalendarDate(loc))
	assert.Equal(t, "2024-01-15", midnight.DateKey())
	assert.Empty(t, FlexTime{}.DateKey())
}

func TestFlexTime_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var v struct {
		A FlexTime `json:"a"`
		B FlexTime `json:"b"`
		C FlexTime `json:"c"`
		D FlexTime `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": null, "b": "garbage", "c": 1705312800000, "d": "2024-01-15"}`), &v))

	assert.False(t, v.A.Valid)
	assert.False(t, v.B.Valid)
	assert.Equal(t, "garbage", v.B.Raw)
	assert.True(t, v.C.Valid)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), v.C.Time)
	assert.True(t, v.D.DateOnly)
}

func TestFlexTime_MarshalJSON(t *testing.T) {
	t.Parallel()

	rec := TaskRecord{ID: "a", Date: NewFlexDate(2024, time.January, 15)}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"date":"2024-01-15"`)
	assert.NotContains(t, string(data), `"start"`)
	assert.NotContains(t, string(data), `"hours"`)
}

func TestHours_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantSet bool
		want    float64
		wantNaN bool
	}{
		{in: `4`, wantSet: true, want: 4},
		{in: `"2.5"`, wantSet: true, want: 2.5},
		{in: `" 3 "`, wantSet: true, want: 3},
		{in: `""`},
		{in: `null`},
		{in: `"lots"`, wantSet: true, wantNaN: true},
		{in: `-2`, wantSet: true, want: -2},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			var h Hours
			require.NoError(t, json.Unmarshal([]byte(tc.in), &h))
			assert.Equal(t, tc.wantSet, h.Set)
			if tc.wantNaN {
				assert.True(t, math.IsNaN(h.Value))
				assert.False(t, h.Positive())
				return
			}
			assert.InDelta(t, tc.want, h.Value, 1e-9)
		})
	}
}

func TestHours_UnmarshalJSON_UnsupportedKindsArePresentButInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"n": 1}`, `[1, 2]`, `true`} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			var h Hours
			require.NoError(t, json.Unmarshal([]byte(raw), &h))
			assert.True(t, h.Set)
			assert.False(t, h.Positive())
		})
	}
}

func TestTaskRecord_OddHoursDoNotRejectTheList(t *testing.T) {
	t.Parallel()

	var records []TaskRecord
	err := json.Unmarshal([]byte(`[
		{"_id": "a", "email": "a@x", "hours": {"value": 3}},
		{"_id": "b", "email": "b@x", "hours": 2}
	]`), &records)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Hours.Set)
	assert.False(t, records[0].Hours.Positive())
	assert.InDelta(t, 2.0, records[1].Hours.Value, 1e-9)

	var fromYAML []TaskRecord
	require.NoError(t, yaml.Unmarshal([]byte("- _id: c\n  hours: [1, 2]\n- _id: d\n  hours: ~\n"), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.True(t, fromYAML[0].Hours.Set)
	assert.False(t, fromYAML[0].Hours.Positive())
	assert.False(t, fromYAML[1].Hours.Set)
}

func TestTaskRecord_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	doc := `
_id: t1
email: ana@studio.example
Task: Site survey
status: Approved
date: 2024-01-15
hours: "3"
approvedHours: 2.5
start: ~
weekHours:
  - day: Monday
    date: 2024-01-15
    hours: 2
`
	var rec TaskRecord
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rec))

	assert.Equal(t, "t1", rec.ID)
	assert.Equal(t, "Site survey", rec.Task)
	assert.True(t, rec.Date.DateOnly)
	assert.Equal(t, NewHours(3), rec.Hours)
	assert.Equal(t, NewHours(2.5), rec.ApprovedHours)
	assert.False(t, rec.Start.Valid)
	require.Len(t, rec.WeekHours, 1)
	assert.True(t, rec.WeekHours[0].IsPopulated())
}

func TestScheduledEvent_MarshalJSON(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	ev := ScheduledEvent{
		TaskRecord: TaskRecord{ID: "t1-x", Task: "Survey", Project: "Harbor"},
		ID:         "t1-2024-01-15-1",
		PersonKey:  "ana@studio.example",
		TaskID:     "t1",
		Start:      start,
		End:        start.Add(2 * time.Hour),
		Duration:   2,
		DateKey:    "2024-01-15",
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "t1-2024-01-15-1", decoded["id"])
	assert.Equal(t, "t1-x", decoded["_id"])
	assert.Equal(t, "2024-01-15T08:30:00Z", decoded["start"])
	assert.Equal(t, "Survey", decoded["Task"])
	assert.InDelta(t, 2.0, decoded["duration"], 1e-9)
	assert.Equal(t, 2*time.Hour, ev.Length())
}

func TestValidateWeekHours(t *testing.T) {
	t.Parallel()

	day := func(d int, h float64) WeekHours {
		return WeekHours{Date: NewFlexDate(2024, time.January, d), Hours: NewHours(h)}
	}

	tests := []struct {
		name       string
		entries    []WeekHours
		wantIssues int
	}{
		{name: "valid week", entries: []WeekHours{day(15, 8), day(16, 8), day(17, 8), day(18, 8), day(19, 8)}},
		{name: "empty", entries: nil, wantIssues: 1},
		{name: "only unfilled days", entries: []WeekHours{{Day: "Monday"}, {Date: NewFlexDate(2024, 1, 16)}}, wantIssues: 1},
		{name: "day over cap", entries: []WeekHours{day(15, 9)}, wantIssues: 1},
		{name: "week over cap", entries: []WeekHours{day(15, 8), day(16, 8), day(17, 8), day(18, 8), day(19, 8), day(20, 1)}, wantIssues: 1},
		{name: "both caps", entries: []WeekHours{day(15, 10), day(16, 8), day(17, 8), day(18, 8), day(19, 8)}, wantIssues: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues, err := ValidateWeekHours(tc.entries)
			assert.Len(t, issues, tc.wantIssues)
			if tc.wantIssues == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tcerrors.ErrInvalidWeekHours)
		})
	}
}

func TestWeekHoursTotal(t *testing.T) {
	t.Parallel()

	entries := []WeekHours{
		{Date: NewFlexDate(2024, time.January, 15), Hours: NewHours(3)},
		{Date: NewFlexDate(2024, time.January, 16), Hours: NewHours(4.5)},
		{Hours: NewHours(10)},
	}
	assert.InDelta(t, 7.5, WeekHoursTotal(entries), 1e-9)
}

// Package domain provides shared domain types for teamcal.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// JSON field names follow the dashboard backend (camelCase, "_id", "Task").
package domain

import (
	"strings"
	"time"

	"github.com/teamcal/teamcal/internal/constants"
)

// TaskRecord is an approved task request as returned by the dashboard backend.
// Records come in several shapes: already scheduled (Start and End set),
// broken down per day (WeekHours), or a single Date with Hours/ApprovedHours.
//
// Example JSON representation:
//
//	{
//	    "_id": "65a1f0c2e4b0a1b2c3d4e5f6",
//	    "email": "ana@studio.example",
//	    "requestedName": "Ana",
//	    "Task": "Facade model",
//	    "project": "Harbor Tower",
//	    "projectCode": "HT-01",
//	    "department": "BIM",
//	    "status": "Approved",
//	    "weekHours": [{"day": "Monday", "date": "2024-01-15T00:00:00.000Z", "hours": 4}],
//	    "createdAt": "2024-01-10T09:12:00.000Z"
//	}
type TaskRecord struct {
	// ID is the backend identifier. Per-date copies carry a "-suffix".
	ID string `json:"_id" yaml:"_id"`

	// Email identifies the assignee. Preferred over RequestedName as the person key.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// RequestedName is the assignee's display name.
	RequestedName string `json:"requestedName,omitempty" yaml:"requestedName,omitempty"`

	// Task is the task label.
	Task string `json:"Task,omitempty" yaml:"Task,omitempty"`

	Project     string `json:"project,omitempty" yaml:"project,omitempty"`
	ProjectCode string `json:"projectCode,omitempty" yaml:"projectCode,omitempty"`
	Department  string `json:"department,omitempty" yaml:"department,omitempty"`

	// Status is the approval state. Only approved records may be scheduled.
	Status constants.TaskStatus `json:"status,omitempty" yaml:"status,omitempty"`

	// Comment is the reviewer's note (rejection reason).
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Date is the single requested day.
	Date FlexTime `json:"date,omitzero" yaml:"date,omitempty"`

	// WeekHours is the per-day breakdown set at approval time.
	WeekHours []WeekHours `json:"weekHours,omitempty" yaml:"weekHours,omitempty"`

	Hours         Hours `json:"hours,omitzero" yaml:"hours,omitempty"`
	ApprovedHours Hours `json:"approvedHours,omitzero" yaml:"approvedHours,omitempty"`

	// Start and End are set when the task was already placed on the calendar.
	Start FlexTime `json:"start,omitzero" yaml:"start,omitempty"`
	End   FlexTime `json:"end,omitzero" yaml:"end,omitempty"`

	// CreatedAt orders scheduling priority: earlier requests get earlier slots.
	CreatedAt FlexTime `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
}

// WeekHours is one approved day of a task.
type WeekHours struct {
	Day   string   `json:"day,omitempty" yaml:"day,omitempty"`
	Date  FlexTime `json:"date,omitzero" yaml:"date,omitempty"`
	Hours Hours    `json:"hours,omitzero" yaml:"hours,omitempty"`
}

// IsPopulated reports whether the entry has a date and positive hours.
func (w WeekHours) IsPopulated() bool {
	return w.Date.Valid && w.Hours.Positive()
}

// PersonKey returns the assignee identity used for per-person scheduling:
// the lower-cased email, falling back to the display name.
func (r *TaskRecord) PersonKey() string {
	if email := strings.TrimSpace(r.Email); email != "" {
		return strings.ToLower(email)
	}
	return strings.ToLower(strings.TrimSpace(r.RequestedName))
}

// DisplayName returns the assignee's name, or the local part of the email.
func (r *TaskRecord) DisplayName() string {
	if name := strings.TrimSpace(r.RequestedName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(strings.TrimSpace(r.Email), "@")
	return local
}

// TaskID returns the base backend id with any per-date "-suffix" removed.
func (r *TaskRecord) TaskID() string {
	id, _, _ := strings.Cut(strings.TrimSpace(r.ID), "-")
	return id
}

// IsPrescheduled reports whether the record already carries a start and end.
func (r *TaskRecord) IsPrescheduled() bool {
	return r.Start.Valid && r.End.Valid
}

// FilterDate returns the date a record is listed under before scheduling:
// Date, else the first week-hours date.
func (r *TaskRecord) FilterDate() FlexTime {
	if r.Date.Valid {
		return r.Date
	}
	if len(r.WeekHours) > 0 {
		return r.WeekHours[0].Date
	}
	return FlexTime{}
}

// ApprovedOnly returns the records whose status allows scheduling.
func ApprovedOnly(records []TaskRecord) []TaskRecord {
	out := make([]TaskRecord, 0, len(records))
	for _, r := range records {
		if r.Status.IsSchedulable() {
			out = append(out, r)
		}
	}
	return out
}

// WorkItem is a normalized unit of unscheduled work for one person.
type WorkItem struct {
	PersonKey string
	TaskID    string

	// RequestedHours is the hours to place after defaulting and clamping.
	RequestedHours float64

	// Duration is RequestedHours rounded to the minute.
	Duration time.Duration

	// AnchorDate is midnight of the day packing begins.
	AnchorDate time.Time

	// Priority orders items; earlier wins contested slots.
	Priority time.Time

	Label       string
	Project     string
	ProjectCode string
	Department  string

	// Record is the source record, carried through to the events.
	Record TaskRecord
}

// ScheduledEvent is a work item, or a part of one, bound to a concrete time range.
// It embeds the source record so every passthrough field survives; the
// event's own Start and End shadow the record's when encoded to JSON.
type ScheduledEvent struct {
	TaskRecord

	ID        string    `json:"id"`
	PersonKey string    `json:"personKey"`
	TaskID    string    `json:"taskId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`

	// Duration is the allocated portion in hours.
	Duration float64 `json:"duration"`

	// DateKey is the event's calendar day as YYYY-MM-DD.
	DateKey string `json:"dateKey"`

	// Prescheduled marks events passed through unchanged from the input.
	Prescheduled bool `json:"prescheduled,omitempty"`
}

// Length returns the time the event occupies.
func (e *ScheduledEvent) Length() time.Duration {
	return e.End.Sub(e.Start)
}

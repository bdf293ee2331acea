package constants

// TaskStatus is the approval state of a task request on the dashboard backend.
type TaskStatus string

// Task request statuses. Only approved tasks are eligible for scheduling.
const (
	TaskStatusPending  TaskStatus = "Pending"
	TaskStatusApproved TaskStatus = "Approved"
	TaskStatusRejected TaskStatus = "Rejected"
)

// AllTaskStatuses returns every known task status.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusApproved, TaskStatusRejected}
}

// String returns the status as sent by the backend.
func (s TaskStatus) String() string {
	return string(s)
}

// IsSchedulable reports whether tasks in this status may be placed on the calendar.
func (s TaskStatus) IsSchedulable() bool {
	return s == TaskStatusApproved
}

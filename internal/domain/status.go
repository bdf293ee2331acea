package domain

import "github.com/teamcal/teamcal/internal/constants"

// Re-export TaskStatus from the constants package so consumers can work with
// records and their statuses through one import.
//
// Example usage:
//
//	import "github.com/teamcal/teamcal/internal/domain"
//
//	rec := domain.TaskRecord{
//	    Status: domain.TaskStatusApproved,
//	}
type (
	// TaskStatus is the approval state of a task request.
	TaskStatus = constants.TaskStatus
)

// Re-export TaskStatus constants for convenience.
// These mirror the values in internal/constants/status.go.
const (
	// TaskStatusPending indicates a request awaiting review.
	TaskStatusPending = constants.TaskStatusPending

	// TaskStatusApproved indicates a request that may be scheduled.
	TaskStatusApproved = constants.TaskStatusApproved

	// TaskStatusRejected indicates a declined request.
	TaskStatusRejected = constants.TaskStatusRejected
)

// Package errors provides centralized error handling for teamcal.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
var (
	// ErrNoResolvableDate indicates a task record carries no usable date in
	// date, weekHours[0].date or createdAt. Such records are dropped.
	ErrNoResolvableDate = errors.New("no resolvable date")

	// ErrInvalidHours indicates a record's hours are zero, negative or NaN
	// and the reject hours policy is active.
	ErrInvalidHours = errors.New("invalid hours")

	// ErrHorizonExceeded indicates an item could not be fully placed within
	// the configured number of working days.
	ErrHorizonExceeded = errors.New("task does not fit in any available slot")

	// ErrInvalidWeekHours indicates a week-hours breakdown breaks the approval rules.
	ErrInvalidWeekHours = errors.New("invalid week hours")

	// ErrFetchFailed indicates the task backend could not be reached or
	// returned a non-success status.
	ErrFetchFailed = errors.New("task fetch failed")

	// ErrUnauthorized indicates the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedInputFormat indicates a task file extension is not JSON or YAML.
	ErrUnsupportedInputFormat = errors.New("unsupported input format")

	// ErrInputParse indicates a task file could not be decoded.
	ErrInputParse = errors.New("task input parse error")

	// ErrNoInput indicates neither a task file nor the API source was selected.
	ErrNoInput = errors.New("no task input specified")

	// ErrInvalidFilterDate indicates a --date or --week value is not a calendar date.
	ErrInvalidFilterDate = errors.New("invalid filter date")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidWorkday indicates an invalid workday window.
	ErrConfigInvalidWorkday = errors.New("invalid workday configuration")

	// ErrConfigInvalidScheduler indicates an invalid scheduler setting.
	ErrConfigInvalidScheduler = errors.New("invalid scheduler configuration")

	// ErrConfigInvalidAPI indicates an invalid API setting.
	ErrConfigInvalidAPI = errors.New("invalid API configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConflictingFlags indicates that mutually exclusive flags were specified.
	ErrConflictingFlags = errors.New("conflicting flags specified")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

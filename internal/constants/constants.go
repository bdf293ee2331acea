// Package constants provides centralized constant values used throughout teamcal.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Workday window. Packing only ever happens inside [WorkdayStart, WorkdayEnd]
// of a Monday-Friday calendar day.
const (
	// WorkdayStartHour and WorkdayStartMinute define 08:30 local time.
	WorkdayStartHour   = 8
	WorkdayStartMinute = 30

	// WorkdayEndHour and WorkdayEndMinute define 16:45 local time.
	WorkdayEndHour   = 16
	WorkdayEndMinute = 45

	// WorkdayStart is the workday start in "HH:MM" form, used for config defaults.
	WorkdayStart = "08:30"

	// WorkdayEnd is the workday end in "HH:MM" form, used for config defaults.
	WorkdayEnd = "16:45"
)

// Scheduling limits.
const (
	// DefaultHours is used when a record carries no hours at all.
	DefaultHours = 1.0

	// MinHours is the smallest unit of work that can be scheduled.
	MinHours = 0.5

	// MaxUnitHours caps a single approved day of a week-hours breakdown.
	MaxUnitHours = 8.0

	// MaxWeekHours caps the total of one week-hours breakdown.
	MaxWeekHours = 40.0

	// DefaultMaxSearchDays bounds how many working days the scheduler walks
	// forward for one item before reporting it as unschedulable.
	DefaultMaxSearchDays = 30
)

// Hours policies applied to invalid (zero, negative, NaN) hour values.
const (
	// HoursPolicyClamp coerces invalid hours to MinHours.
	HoursPolicyClamp = "clamp"

	// HoursPolicyReject drops records with invalid hours.
	HoursPolicyReject = "reject"
)

// Date layouts.
const (
	// DateLayout is the calendar-day key format.
	DateLayout = "2006-01-02"

	// ClockLayout is the "HH:MM" wall clock format.
	ClockLayout = "15:04"
)

// Directory and file names used by teamcal.
const (
	// TeamcalHome is the hidden directory name where teamcal stores its data.
	TeamcalHome = ".teamcal"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "TEAMCAL"

	// HomeEnvVar overrides the location of the teamcal home directory.
	HomeEnvVar = "TEAMCAL_HOME"
)

// API defaults for the dashboard REST backend.
const (
	// DefaultAPIBaseURL is the backend used when none is configured.
	DefaultAPIBaseURL = "http://localhost:8080"

	// DefaultAPITimeout is the per-request timeout.
	DefaultAPITimeout = 30 * time.Second

	// DefaultAPIRetryCount is the number of retries for transient failures.
	DefaultAPIRetryCount = 3

	// DefaultTokenEnvVar names the variable holding the bearer token.
	DefaultTokenEnvVar = "TEAMCAL_TOKEN"

	// MaxConcurrentFetches bounds parallel per-user requests.
	MaxConcurrentFetches = 4
)

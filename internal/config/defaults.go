package config

import (
	"github.com/teamcal/teamcal/internal/constants"
)

// Display defaults.
const (
	DefaultTimeFormat = constants.ClockLayout
	DefaultDateFormat = "Mon 2006-01-02"
)

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files, environment
// variables and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Workday: WorkdayConfig{
			Start: constants.WorkdayStart,
			End:   constants.WorkdayEnd,

			// Timezone: empty means the system zone.
			Timezone: "",
		},
		Scheduler: SchedulerConfig{
			MaxSearchDays: constants.DefaultMaxSearchDays,
			HoursPolicy:   constants.HoursPolicyClamp,
			DefaultHours:  constants.DefaultHours,
			MinHours:      constants.MinHours,
			MaxUnitHours:  constants.MaxUnitHours,
		},
		API: APIConfig{
			BaseURL:     constants.DefaultAPIBaseURL,
			Timeout:     constants.DefaultAPITimeout,
			TokenEnvVar: constants.DefaultTokenEnvVar,
			RetryCount:  constants.DefaultAPIRetryCount,
		},
		Display: DisplayConfig{
			TimeFormat: DefaultTimeFormat,
			DateFormat: DefaultDateFormat,
		},
	}
}

// Package config provides configuration management for teamcal with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (TEAMCAL_* prefix, e.g. TEAMCAL_WORKDAY_TIMEZONE)
//  3. Project config (.teamcal/config.yaml)
//  4. Global config (~/.teamcal/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"time"

	"github.com/teamcal/teamcal/internal/errors"
)

// Config is the root configuration structure for teamcal.
type Config struct {
	// Workday contains the daily scheduling window.
	Workday WorkdayConfig `yaml:"workday" mapstructure:"workday"`

	// Scheduler contains packing limits and the invalid-hours policy.
	Scheduler SchedulerConfig `yaml:"scheduler" mapstructure:"scheduler"`

	// API contains settings for the dashboard REST backend.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Display contains settings for table output.
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
}

// WorkdayConfig describes when work may be placed.
type WorkdayConfig struct {
	// Start is the first minute of the working day as "HH:MM".
	// Default: "08:30"
	Start string `yaml:"start" mapstructure:"start"`

	// End is the end of the working day as "HH:MM".
	// Default: "16:45"
	End string `yaml:"end" mapstructure:"end"`

	// Timezone is an IANA zone name. Empty or "Local" means the system zone.
	// Default: ""
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// Location resolves Timezone.
func (w *WorkdayConfig) Location() (*time.Location, error) {
	if w.Timezone == "" || w.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalidWorkday, "workday.timezone %q: %s", w.Timezone, err.Error())
	}
	return loc, nil
}

// SchedulerConfig contains packing limits.
type SchedulerConfig struct {
	// MaxSearchDays is how many working days one item may span before it
	// is reported as not fitting.
	// Default: 30
	MaxSearchDays int `yaml:"max_search_days" mapstructure:"max_search_days"`

	// HoursPolicy decides what happens to zero, negative or unparseable hours:
	// "clamp" schedules them as min_hours, "reject" drops the record.
	// Default: "clamp"
	HoursPolicy string `yaml:"hours_policy" mapstructure:"hours_policy"`

	// DefaultHours applies to records without any hours.
	// Default: 1
	DefaultHours float64 `yaml:"default_hours" mapstructure:"default_hours"`

	// MinHours is the smallest schedulable amount.
	// Default: 0.5
	MinHours float64 `yaml:"min_hours" mapstructure:"min_hours"`

	// MaxUnitHours caps a single week-hours day.
	// Default: 8
	MaxUnitHours float64 `yaml:"max_unit_hours" mapstructure:"max_unit_hours"`
}

// APIConfig contains settings for the dashboard REST backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://dashboard.example.com".
	// Default: "http://localhost:8080"
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TokenEnvVar names the environment variable holding the bearer token.
	// The token itself is never stored in config files.
	// Default: "TEAMCAL_TOKEN"
	TokenEnvVar string `yaml:"token_env_var" mapstructure:"token_env_var"`

	// RetryCount is the number of retries for transient failures.
	// Default: 3
	RetryCount int `yaml:"retry_count" mapstructure:"retry_count"`
}

// DisplayConfig contains settings for table output.
type DisplayConfig struct {
	// TimeFormat is the Go layout for event times.
	// Default: "15:04"
	TimeFormat string `yaml:"time_format" mapstructure:"time_format"`

	// DateFormat is the Go layout for event dates.
	// Default: "Mon 2006-01-02"
	DateFormat string `yaml:"date_format" mapstructure:"date_format"`
}

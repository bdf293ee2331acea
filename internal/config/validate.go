package config

import (
	"net/url"
	"time"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - workday start and end must be HH:MM with end after start
//   - workday timezone must be a known IANA zone
//   - scheduler max_search_days must be between 1 and 366
//   - scheduler hours_policy must be "clamp" or "reject"
//   - scheduler hours must be positive with min_hours <= max_unit_hours
//   - api base_url must be an absolute http(s) URL, timeout positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateWorkdayConfig(&cfg.Workday); err != nil {
		return err
	}

	if err := validateSchedulerConfig(&cfg.Scheduler); err != nil {
		return err
	}

	if err := validateAPIConfig(&cfg.API); err != nil {
		return err
	}

	return nil
}

func validateWorkdayConfig(cfg *WorkdayConfig) error {
	start, err := time.Parse(constants.ClockLayout, cfg.Start)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidWorkday,
			"workday.start must be HH:MM, got %q", cfg.Start)
	}
	end, err := time.Parse(constants.ClockLayout, cfg.End)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidWorkday,
			"workday.end must be HH:MM, got %q", cfg.End)
	}
	if !end.After(start) {
		return errors.Wrapf(errors.ErrConfigInvalidWorkday,
			"workday.end %s must be after workday.start %s", cfg.End, cfg.Start)
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	return nil
}

func validateSchedulerConfig(cfg *SchedulerConfig) error {
	const maxSearchDays = 366
	if cfg.MaxSearchDays < 1 || cfg.MaxSearchDays > maxSearchDays {
		return errors.Wrapf(errors.ErrConfigInvalidScheduler,
			"scheduler.max_search_days must be between 1 and %d, got %d", maxSearchDays, cfg.MaxSearchDays)
	}

	switch cfg.HoursPolicy {
	case constants.HoursPolicyClamp, constants.HoursPolicyReject:
	default:
		return errors.Wrapf(errors.ErrConfigInvalidScheduler,
			"scheduler.hours_policy must be %q or %q, got %q",
			constants.HoursPolicyClamp, constants.HoursPolicyReject, cfg.HoursPolicy)
	}

	if cfg.MinHours <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidScheduler,
			"scheduler.min_hours must be positive, got %g", cfg.MinHours)
	}
	if cfg.DefaultHours <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidScheduler,
			"scheduler.default_hours must be positive, got %g", cfg.DefaultHours)
	}
	if cfg.MaxUnitHours < cfg.MinHours {
		return errors.Wrapf(errors.ErrConfigInvalidScheduler,
			"scheduler.max_unit_hours (%g) must not be below min_hours (%g)", cfg.MaxUnitHours, cfg.MinHours)
	}
	return nil
}

func validateAPIConfig(cfg *APIConfig) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.base_url must be an absolute http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.RetryCount < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.retry_count cannot be negative, got %d", cfg.RetryCount)
	}
	if cfg.TokenEnvVar == "" {
		return errors.Wrap(errors.ErrConfigInvalidAPI,
			"api.token_env_var must not be empty")
	}
	return nil
}

package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/errors"
)

// newViperInstance creates a Viper instance with the TEAMCAL_ env prefix,
// key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("workday.start", cfg.Workday.Start).
		Str("workday.end", cfg.Workday.End).
		Str("workday.timezone", cfg.Workday.Timezone).
		Int("scheduler.max_search_days", cfg.Scheduler.MaxSearchDays).
		Str("scheduler.hours_policy", cfg.Scheduler.HoursPolicy).
		Str("api.base_url", cfg.API.BaseURL).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (TEAMCAL_* prefix)
//  2. Project config (.teamcal/config.yaml)
//  3. Global config (~/.teamcal/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(ctx, v)
}

// loadGlobalConfig loads the global config file if it exists.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil || !fileExists(globalConfigPath) {
		// Home dir unavailable or no global config, skip silently
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges the project config file over the global one if it exists.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("workday.start", def.Workday.Start)
	v.SetDefault("workday.end", def.Workday.End)
	v.SetDefault("workday.timezone", def.Workday.Timezone)

	v.SetDefault("scheduler.max_search_days", def.Scheduler.MaxSearchDays)
	v.SetDefault("scheduler.hours_policy", def.Scheduler.HoursPolicy)
	v.SetDefault("scheduler.default_hours", def.Scheduler.DefaultHours)
	v.SetDefault("scheduler.min_hours", def.Scheduler.MinHours)
	v.SetDefault("scheduler.max_unit_hours", def.Scheduler.MaxUnitHours)

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout", def.API.Timeout.String())
	v.SetDefault("api.token_env_var", def.API.TokenEnvVar)
	v.SetDefault("api.retry_count", def.API.RetryCount)

	v.SetDefault("display.time_format", def.Display.TimeFormat)
	v.SetDefault("display.date_format", def.Display.DateFormat)
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Workday.Start != "" {
		cfg.Workday.Start = overrides.Workday.Start
	}
	if overrides.Workday.End != "" {
		cfg.Workday.End = overrides.Workday.End
	}
	if overrides.Workday.Timezone != "" {
		cfg.Workday.Timezone = overrides.Workday.Timezone
	}

	if overrides.Scheduler.MaxSearchDays != 0 {
		cfg.Scheduler.MaxSearchDays = overrides.Scheduler.MaxSearchDays
	}
	if overrides.Scheduler.HoursPolicy != "" {
		cfg.Scheduler.HoursPolicy = overrides.Scheduler.HoursPolicy
	}

	if overrides.API.BaseURL != "" {
		cfg.API.BaseURL = overrides.API.BaseURL
	}
	if overrides.API.Timeout != 0 {
		cfg.API.Timeout = overrides.API.Timeout
	}
	if overrides.API.TokenEnvVar != "" {
		cfg.API.TokenEnvVar = overrides.API.TokenEnvVar
	}
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

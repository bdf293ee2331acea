package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	// Isolate from the user's home and working directory config.
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ReadsGlobalAndProjectConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, constants.ConfigFileName), []byte(`
workday:
  timezone: UTC
api:
  base_url: https://global.example
`), 0o600))

	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, constants.TeamcalHome), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(project, constants.TeamcalHome, constants.ConfigFileName), []byte(`
api:
  base_url: https://project.example
`), 0o600))
	t.Chdir(project)

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Workday.Timezone, "global value survives the merge")
	assert.Equal(t, "https://project.example", cfg.API.BaseURL, "project overrides global")
}

func TestLoadFromPaths_ProjectConfigOverridesGlobal(t *testing.T) {
	t.Parallel()

	globalConfig := writeConfig(t, `
workday:
  start: "09:00"
  end: "17:00"
scheduler:
  max_search_days: 10
`)
	projectConfig := writeConfig(t, `
workday:
  start: "08:00"
scheduler:
  hours_policy: reject
api:
  timeout: 5s
`)

	cfg, err := LoadFromPaths(context.Background(), projectConfig, globalConfig)
	require.NoError(t, err)

	assert.Equal(t, "08:00", cfg.Workday.Start, "project should override global")
	assert.Equal(t, "17:00", cfg.Workday.End, "global value should remain")
	assert.Equal(t, 10, cfg.Scheduler.MaxSearchDays)
	assert.Equal(t, constants.HoursPolicyReject, cfg.Scheduler.HoursPolicy)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.InDelta(t, constants.MinHours, cfg.Scheduler.MinHours, 1e-9, "unset keys keep defaults")
}

func TestLoadFromPaths_MissingFilesUseDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := LoadFromPaths(context.Background(), filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPaths_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "bad workday", content: "workday:\n  end: \"07:00\"\n", wantErr: errors.ErrConfigInvalidWorkday},
		{name: "bad timezone", content: "workday:\n  timezone: Mars/Olympus\n", wantErr: errors.ErrConfigInvalidWorkday},
		{name: "bad policy", content: "scheduler:\n  hours_policy: round\n", wantErr: errors.ErrConfigInvalidScheduler},
		{name: "bad url", content: "api:\n  base_url: localhost\n", wantErr: errors.ErrConfigInvalidAPI},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromPaths(context.Background(), writeConfig(t, tc.content), "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoadFromPaths_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadFromPaths(context.Background(), writeConfig(t, "workday: [unterminated"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read project config")
}

func TestLoadFromPaths_EnvOverridesFiles(t *testing.T) {
	t.Setenv("TEAMCAL_WORKDAY_TIMEZONE", "UTC")
	t.Setenv("TEAMCAL_SCHEDULER_MAX_SEARCH_DAYS", "7")
	t.Setenv("TEAMCAL_API_TIMEOUT", "45s")

	cfg, err := LoadFromPaths(context.Background(), writeConfig(t, "workday:\n  timezone: Europe/Berlin\n"), "")
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Workday.Timezone)
	assert.Equal(t, 7, cfg.Scheduler.MaxSearchDays)
	assert.Equal(t, 45*time.Second, cfg.API.Timeout)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadWithOverrides(context.Background(), &Config{
		Workday:   WorkdayConfig{Timezone: "UTC"},
		Scheduler: SchedulerConfig{MaxSearchDays: 3},
		API:       APIConfig{BaseURL: "https://tasks.example"},
	})
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Workday.Timezone)
	assert.Equal(t, 3, cfg.Scheduler.MaxSearchDays)
	assert.Equal(t, "https://tasks.example", cfg.API.BaseURL)
	assert.Equal(t, constants.WorkdayStart, cfg.Workday.Start)

	_, err = LoadWithOverrides(context.Background(), &Config{Scheduler: SchedulerConfig{HoursPolicy: "ignore"}})
	require.ErrorIs(t, err, errors.ErrConfigInvalidScheduler)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.ConfigFileName), path)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.LogsDir), logs)

	assert.Equal(t, filepath.Join(".teamcal", "config.yaml"), ProjectConfigPath())
}

func TestPaths_DefaultHome(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, "")
	userHome, err := os.UserHomeDir()
	require.NoError(t, err)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, constants.TeamcalHome), dir)
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teamcal/teamcal/internal/config"
	"github.com/teamcal/teamcal/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, globals *GlobalFlags) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect teamcal configuration",
	}
	configCmd.AddCommand(newConfigShowCmd(globals, defaultScheduleDeps()))
	root.AddCommand(configCmd)
}

func newConfigShowCmd(globals *GlobalFlags, deps scheduleDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the effective configuration after merging, in order of precedence:

  - TEAMCAL_* environment variables (e.g. TEAMCAL_WORKDAY_TIMEZONE)
  - project config (.teamcal/config.yaml)
  - global config (~/.teamcal/config.yaml, or $TEAMCAL_HOME/config.yaml)
  - built-in defaults

The API token itself is never printed, only whether it is set.

Examples:
  teamcal config show
  teamcal config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), globals, deps)
		},
	}
}

func runConfigShow(ctx context.Context, w io.Writer, globals *GlobalFlags, deps scheduleDeps) error {
	cfg, err := config.Load(GetLogger().WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	view := configView(cfg, deps.getenv(cfg.API.TokenEnvVar) != "")

	if globals.Output == OutputJSON {
		return tui.NewOutput(w, globals.Output).JSON(view)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// configView flattens the configuration into plain values so durations print
// as "30s" in both YAML and JSON.
func configView(cfg *config.Config, tokenSet bool) map[string]any {
	tokenStatus := "not set"
	if tokenSet {
		tokenStatus = "set"
	}
	timezone := cfg.Workday.Timezone
	if timezone == "" {
		timezone = "Local"
	}
	return map[string]any{
		"workday": map[string]any{
			"start":    cfg.Workday.Start,
			"end":      cfg.Workday.End,
			"timezone": timezone,
		},
		"scheduler": map[string]any{
			"max_search_days": cfg.Scheduler.MaxSearchDays,
			"hours_policy":    cfg.Scheduler.HoursPolicy,
			"default_hours":   cfg.Scheduler.DefaultHours,
			"min_hours":       cfg.Scheduler.MinHours,
			"max_unit_hours":  cfg.Scheduler.MaxUnitHours,
		},
		"api": map[string]any{
			"base_url":      cfg.API.BaseURL,
			"timeout":       cfg.API.Timeout.String(),
			"token_env_var": cfg.API.TokenEnvVar,
			"token":         tokenStatus,
			"retry_count":   cfg.API.RetryCount,
		},
		"display": map[string]any{
			"time_format": cfg.Display.TimeFormat,
			"date_format": cfg.Display.DateFormat,
		},
	}
}

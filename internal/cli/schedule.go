package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/teamcal/teamcal/internal/clock"
	"github.com/teamcal/teamcal/internal/config"
	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	"github.com/teamcal/teamcal/internal/errors"
	"github.com/teamcal/teamcal/internal/logging"
	"github.com/teamcal/teamcal/internal/schedule"
	"github.com/teamcal/teamcal/internal/source"
	"github.com/teamcal/teamcal/internal/tui"
)

// weekToday selects the current week for --week.
const weekToday = "today"

// ScheduleFlags holds flags specific to the schedule command.
type ScheduleFlags struct {
	Input string
	API   bool
	Users []string

	Me          string
	Name        string
	Project     string
	Code        string
	Department  string
	Date        string
	Week        string
	FilterFirst bool
	AnyStatus   bool

	Timezone string
	APIURL   string
}

// scheduleDeps are the ambient inputs of a schedule run, injectable for tests.
type scheduleDeps struct {
	clock  clock.Clock
	getenv func(string) string
}

func defaultScheduleDeps() scheduleDeps {
	return scheduleDeps{clock: clock.RealClock{}, getenv: os.Getenv}
}

// AddScheduleCommand adds the schedule command to the root command.
func AddScheduleCommand(root *cobra.Command, globals *GlobalFlags) {
	root.AddCommand(newScheduleCmd(globals, defaultScheduleDeps()))
}

func newScheduleCmd(globals *GlobalFlags, deps scheduleDeps) *cobra.Command {
	flags := &ScheduleFlags{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Pack approved tasks into working-day slots and print the calendar",
		Long: `Schedule approved task requests into non-overlapping working-day slots.

Each person's tasks are packed back to back from 08:30, in request order.
A task that does not fit before 16:45 continues on the next working day.
Tasks that already have a start and end are kept as they are.

Examples:
  teamcal schedule --input tasks.json
  teamcal schedule --api --user jane@example.com --user bob@example.com
  teamcal schedule --input tasks.yaml --me jane@example.com --week today
  teamcal schedule --api --department MEP --date 2024-06-03 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd.Context(), cmd.OutOrStdout(), globals, flags, deps)
		},
	}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "read tasks from a JSON or YAML file")
	cmd.Flags().BoolVar(&flags.API, "api", false, "fetch approved tasks from the dashboard API")
	cmd.Flags().StringSliceVarP(&flags.Users, "user", "u", nil, "with --api, fetch only these users' tasks (repeatable)")
	cmd.Flags().StringVar(&flags.Me, "me", "", "show only this person's events (email or name)")
	cmd.Flags().StringVar(&flags.Name, "name", "", "filter by assignee name (substring)")
	cmd.Flags().StringVar(&flags.Project, "project", "", "filter by project (substring)")
	cmd.Flags().StringVar(&flags.Code, "code", "", "filter by project code (substring)")
	cmd.Flags().StringVar(&flags.Department, "department", "", "filter by department (substring)")
	cmd.Flags().StringVar(&flags.Date, "date", "", "filter by calendar day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Week, "week", "", "show the Monday-Friday week containing DATE (YYYY-MM-DD or 'today')")
	cmd.Flags().BoolVar(&flags.FilterFirst, "filter-before", false, "apply filters to tasks before scheduling instead of to events after")
	cmd.Flags().BoolVar(&flags.AnyStatus, "any-status", false, "schedule file tasks regardless of approval status")
	cmd.Flags().StringVar(&flags.Timezone, "timezone", "", "IANA time zone of the workday (overrides workday.timezone)")
	cmd.Flags().StringVar(&flags.APIURL, "api-url", "", "dashboard API base URL (overrides api.base_url)")
	cmd.MarkFlagsMutuallyExclusive("input", "api")
	cmd.MarkFlagsMutuallyExclusive("date", "week")

	return cmd
}

// scheduleReport is the JSON document printed with -o json.
type scheduleReport struct {
	RunID    string                  `json:"runId"`
	Events   []domain.ScheduledEvent `json:"events"`
	Warnings []string                `json:"warnings"`
}

func runSchedule(ctx context.Context, w io.Writer, globals *GlobalFlags, flags *ScheduleFlags, deps scheduleDeps) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateScheduleFlags(flags); err != nil {
		return errors.NewExitCode2Error(err)
	}
	filter := scheduleFilter(flags)
	if err := filter.Validate(); err != nil {
		return errors.NewExitCode2Error(err)
	}

	cfg, err := config.LoadWithOverrides(ctx, &config.Config{
		Workday: config.WorkdayConfig{Timezone: flags.Timezone},
		API:     config.APIConfig{BaseURL: flags.APIURL},
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	schedCfg, err := schedulerConfig(cfg)
	if err != nil {
		return err
	}
	loc := schedCfg.Workday.Location

	var weekFrom, weekTo time.Time
	if flags.Week != "" {
		day, err := parseWeekDay(flags.Week, deps.clock, loc)
		if err != nil {
			return errors.NewExitCode2Error(err)
		}
		weekFrom, weekTo = schedule.Week(day, loc)
	}

	runID := uuid.NewString()
	logger := GetLogger().With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	src, err := newTaskSource(cfg, flags, deps.getenv, logger)
	if err != nil {
		return err
	}
	records, err := src.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load tasks")
	}
	if !flags.AnyStatus {
		records = domain.ApprovedOnly(records)
	}
	logger.Debug().Int("records", len(records)).Msg("tasks loaded")

	if flags.FilterFirst {
		if records, err = schedule.FilterRecords(records, filter); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}

	result := schedule.NewScheduler(schedCfg, logger).Schedule(records)

	events := result.Events
	if !flags.FilterFirst {
		if events, err = schedule.FilterEvents(events, filter); err != nil {
			return errors.NewExitCode2Error(err)
		}
	}
	if flags.Week != "" {
		events = schedule.InRange(events, weekFrom, weekTo)
	}

	warnings := scheduleWarnings(result)
	logger.Info().
		Int("events", len(events)).
		Int("failures", len(result.Failures)).
		Int("dropped", len(result.Dropped)).
		Msg("schedule built")

	out := tui.NewOutput(w, globals.Output)
	if globals.Output == OutputJSON {
		if events == nil {
			events = []domain.ScheduledEvent{}
		}
		return out.JSON(scheduleReport{RunID: runID, Events: events, Warnings: warnings})
	}

	layout := tui.EventLayout{
		TimeFormat: cfg.Display.TimeFormat,
		DateFormat: cfg.Display.DateFormat,
		Location:   loc,
	}
	if flags.Week != "" && !globals.Quiet {
		out.Info(fmt.Sprintf("Week of %s", weekFrom.Format(constants.DateLayout)))
	}
	if err := out.Events(events, layout); err != nil {
		return err
	}
	for _, msg := range warnings {
		out.Warning(msg)
	}
	return nil
}

// validateScheduleFlags checks flag combinations cobra cannot express.
func validateScheduleFlags(flags *ScheduleFlags) error {
	if flags.Input == "" && !flags.API {
		return errors.ErrNoInput
	}
	if len(flags.Users) > 0 && !flags.API {
		return errors.Wrap(errors.ErrConflictingFlags, "--user requires --api")
	}
	return nil
}

func scheduleFilter(flags *ScheduleFlags) schedule.Filter {
	me := strings.TrimSpace(flags.Me)
	return schedule.Filter{
		PersonName:  flags.Name,
		Project:     flags.Project,
		ProjectCode: flags.Code,
		Department:  flags.Department,
		PersonKey:   strings.ToLower(me),
		Date:        flags.Date,
	}
}

// parseWeekDay resolves --week to a calendar day in loc.
func parseWeekDay(value string, c clock.Clock, loc *time.Location) (time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(value), weekToday) {
		return clock.Today(c, loc), nil
	}
	day, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidFilterDate, "--week %q must be YYYY-MM-DD or %q", value, weekToday)
	}
	return day, nil
}

// schedulerConfig maps the loaded configuration onto scheduler settings.
func schedulerConfig(cfg *config.Config) (schedule.Config, error) {
	loc, err := cfg.Workday.Location()
	if err != nil {
		return schedule.Config{}, err
	}
	workday, err := schedule.NewWorkday(cfg.Workday.Start, cfg.Workday.End, loc)
	if err != nil {
		return schedule.Config{}, err
	}
	return schedule.Config{
		Workday:       workday,
		MaxSearchDays: cfg.Scheduler.MaxSearchDays,
		HoursPolicy:   cfg.Scheduler.HoursPolicy,
		DefaultHours:  cfg.Scheduler.DefaultHours,
		MinHours:      cfg.Scheduler.MinHours,
		MaxUnitHours:  cfg.Scheduler.MaxUnitHours,
	}, nil
}

// newTaskSource picks the file or API source. The bearer token is read from
// the environment variable named by api.token_env_var.
func newTaskSource(cfg *config.Config, flags *ScheduleFlags, getenv func(string) string, logger zerolog.Logger) (source.Source, error) {
	if !flags.API {
		return source.NewFileSource(flags.Input), nil
	}

	token := getenv(cfg.API.TokenEnvVar)
	if token == "" {
		logger.Warn().Str("env_var", cfg.API.TokenEnvVar).Msg("no API token set, requests will be unauthenticated")
	}
	client, err := source.NewAPIClient(source.APIConfig{
		BaseURL:    cfg.API.BaseURL,
		Token:      token,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("base_url", logging.SafeValue("base_url", cfg.API.BaseURL)).
		Strs("users", flags.Users).
		Msg("fetching tasks from API")
	return &source.APISource{Client: client, Users: flags.Users}, nil
}

// scheduleWarnings renders failures and dropped records as user warnings.
func scheduleWarnings(result schedule.Result) []string {
	warnings := make([]string, 0, len(result.Failures)+len(result.Dropped))
	for _, f := range result.Failures {
		warnings = append(warnings, f.Error())
	}
	for _, d := range result.Dropped {
		warnings = append(warnings, fmt.Sprintf("Task %s skipped: %s", d.ID, errors.UserMessage(d.Err)))
	}
	return warnings
}

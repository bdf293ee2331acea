// Package cli provides the command-line interface for teamcal.
//
// This package CAN import every other internal package. Nothing imports it
// except cmd/teamcal.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teamcal/teamcal/internal/errors"
	"github.com/teamcal/teamcal/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger initialized in PersistentPreRunE.
// Access is protected by globalLoggerMu.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has run;
// before that it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command. Building it in a function keeps the
// command tree free of package-level state, so tests can create fresh trees.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "teamcal",
		Short: "teamcal - turn approved task requests into a team calendar",
		Long: `teamcal packs each person's approved design-task requests into
non-overlapping working-day slots (08:30-16:45, Monday to Friday).

Tasks come from a JSON/YAML export or straight from the dashboard API.
Tasks that would run past a day's end carry over to the next working day.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			// Flags win over TEAMCAL_OUTPUT/VERBOSE/QUIET, which win over defaults.
			flags.Output = v.GetString("output")
			flags.Verbose = v.GetBool("verbose")
			flags.Quiet = v.GetBool("quiet")

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddScheduleCommand(cmd, flags)
	AddValidateCommand(cmd, flags)
	AddConfigCommand(cmd, flags)
	AddVersionCommand(cmd, info)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are reported once, in the selected output format, and returned so
// callers can map them to a process exit code with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	defer CloseLogFile()

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(os.Stdout, os.Stderr, flags.Output, err)
	}
	return err
}

// reportError prints err for the user. JSON errors go to stdout so scripts
// reading the document see them; text errors go to stderr.
func reportError(stdout, stderr io.Writer, format string, err error) {
	if format == OutputJSON {
		tui.NewJSONOutput(stdout).Error(err)
		return
	}
	tui.NewTTYOutput(stderr).Error(err)
}

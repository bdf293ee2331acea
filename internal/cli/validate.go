package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teamcal/teamcal/internal/domain"
	"github.com/teamcal/teamcal/internal/errors"
	"github.com/teamcal/teamcal/internal/source"
	"github.com/teamcal/teamcal/internal/tui"
)

// AddValidateCommand adds the validate command to the root command.
func AddValidateCommand(root *cobra.Command, globals *GlobalFlags) {
	root.AddCommand(newValidateCmd(globals))
}

func newValidateCmd(globals *GlobalFlags) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check week-hours requests against the approval rules",
		Long: `Check every task request that carries week hours against the rules an
admin applies before approving it:

  - at least one day has a date and hours
  - no single day is above 8 hours
  - the week totals 40 hours or less

Records without week hours are reported as skipped.

Examples:
  teamcal validate --input requests.json
  teamcal validate --input requests.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), globals, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON or YAML file of task requests")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// validationResult is the outcome for one record.
type validationResult struct {
	ID      string                  `json:"id"`
	Person  string                  `json:"person"`
	Skipped bool                    `json:"skipped,omitempty"`
	Valid   bool                    `json:"valid"`
	Total   float64                 `json:"total"`
	Issues  []domain.WeekHoursIssue `json:"issues,omitempty"`
}

func runValidate(ctx context.Context, w io.Writer, globals *GlobalFlags, input string) error {
	logger := GetLogger()

	records, err := source.NewFileSource(input).Load(logger.WithContext(ctx))
	if err != nil {
		return errors.Wrap(err, "failed to load task requests")
	}

	results := validateRecords(records)
	invalid := 0
	for _, r := range results {
		if !r.Skipped && !r.Valid {
			invalid++
		}
	}
	logger.Debug().Int("records", len(results)).Int("invalid", invalid).Msg("week hours validated")

	out := tui.NewOutput(w, globals.Output)
	if globals.Output == OutputJSON {
		if err := out.JSON(results); err != nil {
			return err
		}
	} else {
		printValidation(out, results)
	}

	if invalid > 0 {
		return errors.Wrapf(errors.ErrInvalidWeekHours, "%d of %d requests", invalid, len(results))
	}
	return nil
}

func validateRecords(records []domain.TaskRecord) []validationResult {
	results := make([]validationResult, 0, len(records))
	for i := range records {
		rec := &records[i]
		r := validationResult{ID: rec.ID, Person: rec.DisplayName()}
		if r.ID == "" {
			r.ID = fmt.Sprintf("record%d", i)
		}
		if len(rec.WeekHours) == 0 {
			r.Skipped = true
			r.Valid = true
			results = append(results, r)
			continue
		}
		r.Total = domain.WeekHoursTotal(rec.WeekHours)
		issues, err := domain.ValidateWeekHours(rec.WeekHours)
		r.Valid = err == nil
		r.Issues = issues
		results = append(results, r)
	}
	return results
}

func printValidation(out tui.Output, results []validationResult) {
	for _, r := range results {
		label := r.ID
		if r.Person != "" {
			label += " (" + r.Person + ")"
		}
		switch {
		case r.Skipped:
			out.Info(label + ": no week hours")
		case r.Valid:
			out.Success(fmt.Sprintf("%s: %s hours", label, tui.FormatHours(r.Total)))
		default:
			for _, issue := range r.Issues {
				out.Warning(label + ": " + issue.Message)
			}
		}
	}
}

package domain

import (
	"fmt"

	"github.com/teamcal/teamcal/internal/constants"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// WeekHoursIssue describes one approval-rule violation in a week-hours breakdown.
type WeekHoursIssue struct {
	// Index is the offending entry, or -1 for rules over the whole week.
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ValidateWeekHours checks a breakdown against the approval rules: at least
// one day with a date and positive hours, no day above the daily cap and a
// weekly total within the weekly cap. It returns every issue found and an
// error wrapping ErrInvalidWeekHours when there is at least one.
func ValidateWeekHours(entries []WeekHours) ([]WeekHoursIssue, error) {
	var (
		issues []WeekHoursIssue
		total  float64
		filled int
	)

	for i, e := range entries {
		if !e.IsPopulated() {
			continue
		}
		filled++
		total += e.Hours.Value
		if e.Hours.Value > constants.MaxUnitHours {
			issues = append(issues, WeekHoursIssue{
				Index:   i,
				Message: fmt.Sprintf("%s has %g hours, above the %.0f hour daily limit", dayLabel(e), e.Hours.Value, constants.MaxUnitHours),
			})
		}
	}

	if filled == 0 {
		issues = append(issues, WeekHoursIssue{Index: -1, Message: "at least one day needs a date and hours"})
	}
	if total > constants.MaxWeekHours {
		issues = append(issues, WeekHoursIssue{
			Index:   -1,
			Message: fmt.Sprintf("week total of %.2f hours is above the %.0f hour weekly limit", total, constants.MaxWeekHours),
		})
	}

	if len(issues) > 0 {
		return issues, tcerrors.Wrapf(tcerrors.ErrInvalidWeekHours, "%d issue(s)", len(issues))
	}
	return nil, nil
}

// WeekHoursTotal sums the populated entries.
func WeekHoursTotal(entries []WeekHours) float64 {
	var total float64
	for _, e := range entries {
		if e.IsPopulated() {
			total += e.Hours.Value
		}
	}
	return total
}

func dayLabel(e WeekHours) string {
	if e.Day != "" {
		return e.Day
	}
	return e.Date.Time.Format(constants.DateLayout)
}

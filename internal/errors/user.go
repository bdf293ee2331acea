package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map because wrapped errors need errors.Is traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Scheduling
	// ===================
	{
		err: ErrHorizonExceeded,
		info: ErrorInfo{
			Message: "A task doesn't fit in any available slot.",
			Action:  "Reduce its hours, move its date, or raise scheduler.max_search_days.",
		},
	},
	{
		err: ErrNoResolvableDate,
		info: ErrorInfo{
			Message: "A task has no usable date and was left off the calendar.",
			Action:  "Set a date or week hours on the task request.",
		},
	},
	{
		err: ErrInvalidHours,
		info: ErrorInfo{
			Message: "A task has zero, negative or non-numeric hours.",
			Action:  "Fix the hours on the task, or set scheduler.hours_policy to clamp.",
		},
	},
	{
		err: ErrInvalidWeekHours,
		info: ErrorInfo{
			Message: "Week hours break the approval rules.",
			Action:  "Fill at least one day, keep each day at 8 hours or less and the week at 40 or less.",
		},
	},

	// ===================
	// Task sources
	// ===================
	{
		err: ErrUnauthorized,
		info: ErrorInfo{
			Message: "The task backend rejected the token.",
			Action:  "Log in again and export a fresh token in TEAMCAL_TOKEN.",
		},
	},
	{
		err: ErrFetchFailed,
		info: ErrorInfo{
			Message: "Could not fetch approved tasks.",
			Action:  "Check api.base_url and that the backend is running.",
		},
	},
	{
		err: ErrUnsupportedInputFormat,
		info: ErrorInfo{
			Message: "The task file must be JSON or YAML.",
			Action:  "Use a .json, .yaml or .yml file.",
		},
	},
	{
		err: ErrInputParse,
		info: ErrorInfo{
			Message: "The task file could not be parsed.",
			Action:  "Check the file for syntax errors.",
		},
	},
	{
		err: ErrNoInput,
		info: ErrorInfo{
			Message: "No task source was given.",
			Action:  "Pass --input FILE or --api.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure .teamcal/config.yaml exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidWorkday,
		info: ErrorInfo{
			Message: "Invalid workday configuration.",
			Action:  "Check the 'workday' section: start must be before end, both as HH:MM.",
		},
	},
	{
		err: ErrConfigInvalidScheduler,
		info: ErrorInfo{
			Message: "Invalid scheduler configuration.",
			Action:  "Check the 'scheduler' section in config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidAPI,
		info: ErrorInfo{
			Message: "Invalid API configuration.",
			Action:  "Check the 'api' section in config.yaml for invalid values.",
		},
	},

	// ===================
	// Misc
	// ===================
	{
		err: ErrInvalidFilterDate,
		info: ErrorInfo{
			Message: "The date filter is not a valid calendar date.",
			Action:  "Use the YYYY-MM-DD format, or 'today' for --week.",
		},
	},
	{
		err: ErrConflictingFlags,
		info: ErrorInfo{
			Message: "The specified flags cannot be used together.",
			Action:  "Check the command help for valid flag combinations.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error, falling back to the
// error's own message when no sentinel matches.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}

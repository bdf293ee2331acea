package tui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal or a pipe.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Events prints a schedule.
	Events(events []domain.ScheduledEvent, layout EventLayout) error
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

// TTYOutput provides styled output for terminal displays.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	width  int
}

// NewTTYOutput creates a new TTYOutput. It respects NO_COLOR.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
		width:  TerminalWidth(),
	}
}

// Success prints a success message.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints the user-facing message for err, the suggested action when
// one exists, and the raw error text when it adds detail.
func (o *TTYOutput) Error(err error) {
	msg, action := tcerrors.Actionable(err)
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if detail := err.Error(); detail != msg {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  "+detail))
	}
	if action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// Warning prints a warning message.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render("ℹ "+msg))
}

// Events prints the schedule as a table grouped by day.
func (o *TTYOutput) Events(events []domain.ScheduledEvent, layout EventLayout) error {
	if len(events) == 0 {
		o.Info("No events scheduled")
		return nil
	}
	if err := EventTable(events, layout, WithTerminalWidth(o.width)).Render(o.w); err != nil {
		return fmt.Errorf("failed to render events: %w", err)
	}
	_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render(EventSummary(events)))
	return nil
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// JSONOutput emits one JSON document per call, for pipes and scripts.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// jsonMessage is the structured format for Success/Warning/Info messages.
type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError is the structured format for Error messages.
type jsonError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Action  string `json:"action,omitempty"`
}

// Success outputs {"type":"success","message":...}.
func (o *JSONOutput) Success(msg string) {
	_ = o.JSON(jsonMessage{Type: "success", Message: msg})
}

// Error outputs {"type":"error","message":...,"details":...,"action":...}.
func (o *JSONOutput) Error(err error) {
	msg, action := tcerrors.Actionable(err)
	out := jsonError{Type: "error", Message: msg, Action: action}
	if detail := err.Error(); detail != msg {
		out.Details = detail
	}
	_ = o.JSON(out)
}

// Warning outputs {"type":"warning","message":...}.
func (o *JSONOutput) Warning(msg string) {
	_ = o.JSON(jsonMessage{Type: "warning", Message: msg})
}

// Info is a no-op so piped schedules stay a single parseable document.
func (o *JSONOutput) Info(_ string) {}

// Events outputs the events as a JSON array; an empty schedule is [].
func (o *JSONOutput) Events(events []domain.ScheduledEvent, _ EventLayout) error {
	if events == nil {
		events = []domain.ScheduledEvent{}
	}
	return o.JSON(events)
}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)

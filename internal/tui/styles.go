// Package tui renders teamcal output for terminals and for machines.
//
// This package provides a centralized style system using Lip Gloss. All
// semantic colors use AdaptiveColor for light/dark terminal support.
//
// # Semantic Colors
//
//   - ColorPrimary (Blue): headings, informational messages
//   - ColorSuccess (Green): success messages
//   - ColorWarning (Yellow): tasks that could not be placed
//   - ColorError (Red): errors
//   - ColorMuted (Gray): secondary text
//
// # Department Colors
//
// Events are tinted by department the same way the dashboard calendar does:
// LEED purple, BIM lime, MEP indigo, everything else gray.
//
// # NO_COLOR Support
//
// Call CheckNoColor() before rendering to respect the NO_COLOR environment
// variable. Colors are also disabled when TERM=dumb.
//
// This package CAN import internal/constants, internal/domain and internal/errors.
// It MUST NOT import internal/cli, internal/config or internal/source.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for headings and informational messages.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for success messages.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for unplaced tasks and other warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Department colors, matching the dashboard calendar.
const (
	DepartmentColorLEED    = lipgloss.Color("#a8499c")
	DepartmentColorBIM     = lipgloss.Color("#c8db00")
	DepartmentColorMEP     = lipgloss.Color("#6366f1")
	DepartmentColorDefault = lipgloss.Color("#818181")
)

// DepartmentColor returns the calendar color for a department.
// Matching is case-insensitive; unknown and empty departments get the default.
func DepartmentColor(department string) lipgloss.Color {
	switch strings.ToUpper(strings.TrimSpace(department)) {
	case "LEED":
		return DepartmentColorLEED
	case "BIM":
		return DepartmentColorBIM
	case "MEP":
		return DepartmentColorMEP
	default:
		return DepartmentColorDefault
	}
}

// DepartmentStyle returns a style that colors text by department.
// With colors disabled it returns a plain style.
func DepartmentStyle(department string) lipgloss.Style {
	if !HasColorSupport() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(DepartmentColor(department))
}

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Heading lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// padRight pads s with spaces to the given display width.
// Width is measured without ANSI escape codes and with East Asian wide runes
// counted as two cells.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// padLeft right-aligns s within the given display width.
func padLeft(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}

// truncate shortens plain text to at most width display cells, ending with "…".
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

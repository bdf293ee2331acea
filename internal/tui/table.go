package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultTerminalWidth is used when terminal width cannot be determined.
const DefaultTerminalWidth = 120

// columnGap separates table columns.
const columnGap = "  "

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name string
	// MaxWidth caps the column; zero means no cap.
	MaxWidth int
	Align    Alignment
}

// TableRow is one data row. Style, when set, is applied to the cell at
// StyledIndex after padding so ANSI codes never skew alignment.
type TableRow struct {
	Cells       []string
	StyledIndex int
	Style       *lipgloss.Style
}

// Table renders aligned columns sized to their content.
type Table struct {
	columns []TableColumn
	rows    []TableRow
	styles  *TableStyles
	width   int
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTerminalWidth caps the total table width. Zero disables the cap.
func WithTerminalWidth(width int) TableOption {
	return func(t *Table) {
		t.width = width
	}
}

// NewTable creates a table with the given columns.
func NewTable(columns []TableColumn, opts ...TableOption) *Table {
	t := &Table{
		columns: columns,
		styles:  NewTableStyles(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddRow appends a plain row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, TableRow{Cells: cells, StyledIndex: -1})
}

// AddStyledRow appends a row whose cell at index is rendered with style.
func (t *Table) AddStyledRow(cells []string, index int, style lipgloss.Style) {
	t.rows = append(t.rows, TableRow{Cells: cells, StyledIndex: index, Style: &style})
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Headers returns the column names.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Name
	}
	return headers
}

// Rows returns the plain cell values, padded with empty strings to the column count.
func (t *Table) Rows() [][]string {
	out := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		copy(cells, row.Cells)
		out = append(out, cells)
	}
	return out
}

// Render writes the header and every row to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.columnWidths()

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = t.styles.Header.Render(t.align(truncate(col.Name, widths[i]), widths[i], col.Align))
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(header, columnGap), " ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			cell = t.align(truncate(cell, widths[i]), widths[i], col.Align)
			if row.Style != nil && i == row.StyledIndex {
				cell = row.Style.Render(cell)
			}
			parts[i] = cell
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, columnGap), " ")); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) align(s string, width int, a Alignment) string {
	if a == AlignRight {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// columnWidths sizes every column to its widest cell, applies MaxWidth and
// then shrinks the widest columns until the table fits the terminal width.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.Name)
	}
	for _, row := range t.rows {
		for i := range min(len(row.Cells), len(widths)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row.Cells[i]))
		}
	}
	for i, col := range t.columns {
		if col.MaxWidth > 0 {
			widths[i] = min(widths[i], col.MaxWidth)
		}
	}

	if t.width <= 0 {
		return widths
	}
	const minColumnWidth = 4
	for total(widths)+len(columnGap)*(len(widths)-1) > t.width {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	return sum
}

// TerminalWidth returns the width of stdout, or zero when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // fd fits in int on supported platforms
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

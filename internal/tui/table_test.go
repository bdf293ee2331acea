package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLines(t *testing.T, tbl *Table) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	return strings.Split(strings.TrimRight(stripANSI(buf.String()), "\n"), "\n")
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]TableColumn{
		{Name: "NAME"},
		{Name: "HOURS", Align: AlignRight},
	})
	tbl.AddRow("Alice", "8.25")
	tbl.AddRow("Bob", "1")

	lines := renderLines(t, tbl)
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME   HOURS", lines[0])
	assert.Equal(t, "Alice   8.25", lines[1])
	assert.Equal(t, "Bob        1", lines[2])
}

func TestTable_MaxWidthTruncates(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]TableColumn{{Name: "TASK", MaxWidth: 8}, {Name: "X"}})
	tbl.AddRow("Revit family cleanup", "y")

	lines := renderLines(t, tbl)
	assert.Equal(t, "Revit f…  y", lines[1])
}

func TestTable_TerminalWidthShrinksWidestColumn(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]TableColumn{{Name: "A"}, {Name: "B"}}, WithTerminalWidth(20))
	tbl.AddRow("short", strings.Repeat("x", 40))

	for _, line := range renderLines(t, tbl) {
		assert.LessOrEqual(t, lipgloss.Width(line), 20, line)
	}
}

func TestTable_StyledCellKeepsAlignment(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]TableColumn{{Name: "DEPT"}, {Name: "H"}})
	tbl.AddStyledRow([]string{"MEP", "1"}, 0, lipgloss.NewStyle().Foreground(DepartmentColorMEP))

	lines := renderLines(t, tbl)
	assert.Equal(t, "MEP   1", lines[1])
}

func TestTable_HeadersAndRows(t *testing.T) {
	t.Parallel()

	tbl := NewTable([]TableColumn{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	tbl.AddRow("1", "2")

	assert.Equal(t, []string{"A", "B", "C"}, tbl.Headers())
	assert.Equal(t, [][]string{{"1", "2", ""}}, tbl.Rows())
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_NoColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTable(nil).Render(&buf))
	assert.Empty(t, buf.String())
}

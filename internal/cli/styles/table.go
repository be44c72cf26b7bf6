package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/startdash/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	// Apply theme styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// LayoutTableColumns returns columns for the persisted layout table.
func LayoutTableColumns() []table.Column {
	return []table.Column{
		{Title: "Window", Width: 24},
		{Title: "X", Width: 6},
		{Title: "Y", Width: 6},
		{Title: "Width", Width: 8},
		{Title: "Height", Width: 8},
	}
}

// LayoutRow converts a persisted window layout to a table row. Missing
// values render as "-".
func LayoutRow(l entity.WindowLayout) table.Row {
	row := table.Row{l.ID, "-", "-", "-", "-"}
	if l.Position != nil {
		row[1] = strconv.Itoa(l.Position.X)
		row[2] = strconv.Itoa(l.Position.Y)
	}
	if l.Size != nil {
		if l.Size.Width != nil {
			row[3] = strconv.Itoa(*l.Size.Width)
		}
		if l.Size.Height != nil {
			row[4] = strconv.Itoa(*l.Size.Height)
		}
	}
	return row
}

// TableWidth sums column widths plus the cell padding bubbles/table adds.
func TableWidth(columns []table.Column) int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}

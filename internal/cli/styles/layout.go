package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/startdash/internal/domain/entity"
)

// LayoutRenderer renders the persisted window layout.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// RenderTable renders one row per window with a header naming the database.
func (r *LayoutRenderer) RenderTable(database string, layouts []entity.WindowLayout) string {
	if len(layouts) == 0 {
		return r.RenderEmpty(database)
	}

	columns := LayoutTableColumns()
	rows := make([]table.Row, 0, len(layouts))
	for _, l := range layouts {
		rows = append(rows, LayoutRow(l))
	}
	t := NewStyledTable(r.theme, columns, rows, TableWidth(columns), len(rows)+2)

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	header := fmt.Sprintf("%s %s %s",
		iconStyle.Render(IconDatabase),
		r.theme.Title.Render(fmt.Sprintf("Saved layout of %d windows", len(layouts))),
		r.theme.Subtle.Render(database),
	)
	return "\n  " + header + "\n\n" + lipgloss.NewStyle().MarginLeft(2).Render(t.View()) + "\n"
}

// RenderEmpty renders the message shown when nothing has been persisted.
func (r *LayoutRenderer) RenderEmpty(database string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf(
		"\n  %s No saved layout in %s\n  %s\n",
		iconStyle.Render(IconInfo),
		r.theme.Subtle.Render(database),
		r.theme.Subtle.Render("Windows keep their configured placement until they are moved."),
	)
}

// RenderReset confirms that one window's layout was cleared.
func (r *LayoutRenderer) RenderReset(id entity.WindowID) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Reset %s\n", iconStyle.Render(IconTrash), r.theme.Highlight.Render(id))
}

// RenderResetAll confirms that every persisted layout was cleared.
func (r *LayoutRenderer) RenderResetAll(count int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Cleared the layout of %s windows\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d", count)),
	)
}

// RenderCanceled renders the message shown when a reset is declined.
func (r *LayoutRenderer) RenderCanceled() string {
	return fmt.Sprintf("\n  %s\n", r.theme.Subtle.Render("Nothing changed."))
}

// RenderError renders an error message.
func (r *LayoutRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Layout error: %v\n", iconStyle.Render(IconX), err)
}

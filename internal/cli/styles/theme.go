// Package styles provides the lipgloss theme shared by the desk and the CLI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of base colors a Theme is derived from.
type Palette struct {
	Background string
	Text       string
	Muted      string
	Accent     string
	Border     string
}

// Theme holds lipgloss colors and styles.
type Theme struct {
	// Base colors
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	// Additional semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Desk styles
	Link          lipgloss.Style
	Heading       lipgloss.Style
	Handle        lipgloss.Style
	Button        lipgloss.Style
	FrameBorder   lipgloss.Border
	FrameIdle     lipgloss.Style
	FrameFocused  lipgloss.Style
	FrameGesture  lipgloss.Style
	GestureBorder lipgloss.Border

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	Box lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background: "#0a0a0b",
		Text:       "#ffffff",
		Muted:      "#909090",
		Accent:     "#4ade80",
		Border:     "#333333",
	}
}

// NewTheme creates the default dark Theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background: lipgloss.Color(p.Background),
		Text:       lipgloss.Color(p.Text),
		Muted:      lipgloss.Color(p.Muted),
		Accent:     lipgloss.Color(p.Accent),
		Border:     lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color(p.Accent),
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	// Text styles
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	// Window content
	t.Link = lipgloss.NewStyle().
		Foreground(t.Accent).
		Underline(true)

	t.Heading = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Handle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.Button = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent)

	// Window frames
	t.FrameBorder = lipgloss.RoundedBorder()
	t.GestureBorder = lipgloss.ThickBorder()

	t.FrameIdle = lipgloss.NewStyle().
		Foreground(t.Border)

	t.FrameFocused = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.FrameGesture = lipgloss.NewStyle().
		Foreground(t.Accent)

	// Help styles
	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.HelpSeparator = lipgloss.NewStyle().
		Foreground(t.Border)

	// Box/container styles
	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
}

// NoticeStyle returns the status line style for a notice kind name
// ("info", "success", "warning", "error").
func (t *Theme) NoticeStyle(kind string) lipgloss.Style {
	switch kind {
	case "success":
		return t.SuccessStyle
	case "warning":
		return t.WarningStyle
	case "error":
		return t.ErrorStyle
	default:
		return t.Normal
	}
}

package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// DeskKeyMap defines keybindings for the desk.
type DeskKeyMap struct {
	Raise   key.Binding
	Refresh key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k DeskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Raise, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k DeskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Raise, k.Refresh},
		{k.Dismiss},
		{k.Help, k.Quit},
	}
}

// DefaultDeskKeyMap returns the default desk keybindings.
func DefaultDeskKeyMap() DeskKeyMap {
	return DeskKeyMap{
		Raise: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "raise next"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss notices"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = theme.HelpSeparator
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.Normal
	h.Styles.FullSeparator = theme.HelpSeparator
	h.Styles.Ellipsis = theme.HelpSeparator
	return h
}

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path and the directories derived from it.
func (r *ConfigRenderer) RenderConfigInfo(path, database, logDir string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config   %s\n  %s Layout   %s\n  %s Logs     %s\n",
		iconStyle.Render(IconConfig), pathStyle.Render(path),
		iconStyle.Render(IconDatabase), pathStyle.Render(database),
		iconStyle.Render(IconInfo), pathStyle.Render(logDir),
	)
}

// RenderNoConfigFile renders message when config file doesn't exist yet.
func (r *ConfigRenderer) RenderNoConfigFile(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	return fmt.Sprintf(
		"\n  %s Config %s\n  %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("Config file will be created on first run with all defaults."),
	)
}

// RenderSchemaWritten confirms that the JSON schema was written to path.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf("\n  %s Schema written to %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderDocsGenerated lists the documentation files written to dir.
func (r *ConfigRenderer) RenderDocsGenerated(dir string, files []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s Generated %d files in %s\n",
		r.theme.SuccessStyle.Render(IconCheck), len(files), r.theme.Subtle.Render(dir))
	for _, f := range files {
		fmt.Fprintf(&b, "    %s\n", f)
	}
	return b.String()
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/startdash/internal/cli/styles"
)

var aboutShort bool

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long: `Display version, build info, repository URL, and contributors.

With --short, print a single plain line suitable for bug reports.`,
	Args: cobra.NoArgs,
	RunE: runAbout,
}

func init() {
	aboutCmd.Flags().BoolVar(&aboutShort, "short", false, "print a single plain line")
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(c *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	out := c.OutOrStdout()
	if aboutShort {
		_, err := fmt.Fprintln(out, app.BuildInfo.String())
		return err
	}
	_, err := fmt.Fprintln(out, styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
	return err
}

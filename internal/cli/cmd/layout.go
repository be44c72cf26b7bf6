package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/startdash/internal/cli/styles"
)

var layoutYes bool

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect or reset saved window positions and sizes",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the saved position and size of each window",
	Args:  cobra.NoArgs,
	RunE:  runLayoutShow,
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset [window-id]",
	Short: "Forget saved geometry so windows return to their configured placement",
	Long: `Forget the saved position and size of one window, or of every window
when no id is given. Run it while the desk is closed; a running desk
writes its layout again on the next drag.

Examples:
  startdash layout reset clock-component    # Reset one window
  startdash layout reset                    # Reset every window (asks first)
  startdash layout reset --yes              # Reset every window without asking`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayoutReset,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	layoutResetCmd.Flags().BoolVarP(&layoutYes, "yes", "y", false, "skip confirmation prompt")
}

func runLayoutShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewLayoutRenderer(app.Theme)
	fmt.Println(renderer.RenderTable(app.DatabasePath(), app.Layout().Layouts(app.Ctx())))
	return nil
}

func runLayoutReset(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx := app.Ctx()
	store := app.Layout()
	renderer := styles.NewLayoutRenderer(app.Theme)

	if len(args) == 1 {
		if err := store.Clear(ctx, args[0]); err != nil {
			fmt.Println(renderer.RenderError(err))
			return err
		}
		fmt.Println(renderer.RenderReset(args[0]))
		return nil
	}

	saved := store.Layouts(ctx)
	if len(saved) == 0 {
		fmt.Println(renderer.RenderEmpty(app.DatabasePath()))
		return nil
	}

	if !layoutYes {
		fmt.Println(renderer.RenderTable(app.DatabasePath(), saved))
		msg := fmt.Sprintf("Forget the layout of %d windows?", len(saved))
		final, err := tea.NewProgram(styles.NewConfirm(app.Theme, msg)).Run()
		if err != nil {
			return fmt.Errorf("confirm reset: %w", err)
		}
		if confirm, ok := final.(styles.ConfirmModel); !ok || !confirm.Result() {
			fmt.Println(renderer.RenderCanceled())
			return nil
		}
	}

	if err := store.ClearAll(ctx); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(renderer.RenderResetAll(len(saved)))
	return nil
}

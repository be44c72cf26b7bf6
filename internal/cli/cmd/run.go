package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/bnema/startdash/internal/bootstrap"
	"github.com/bnema/startdash/internal/cli"
	"github.com/bnema/startdash/internal/config"
	"github.com/bnema/startdash/internal/infrastructure/desktop"
	"github.com/bnema/startdash/internal/infrastructure/filesystem"
	"github.com/bnema/startdash/internal/infrastructure/weather"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/terminal"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

var runEphemeral bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the desk",
	Long: `Open the desk in the terminal.

Drag a window by its title bar, resize it from the grip in its bottom-right
corner and click links to open them. Positions and sizes are saved as soon
as a gesture ends.

Only one desk can own the layout database at a time. --ephemeral starts a
desk that keeps its layout in memory and skips the lock.`,
	Args: cobra.NoArgs,
	RunE: runDesk,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runEphemeral, "ephemeral", false, "keep the layout in memory only")
}

func runDesk(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	timer := bootstrap.NewStartupTimer()

	if err := app.StartFileLog(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logging.RecoverCrash(ctx, app.Config.Logging.LogDir, app.BuildInfo.Version)
	log := logging.FromContext(ctx)
	log.Info().
		Str("version", app.BuildInfo.Version).
		Bool("ephemeral", runEphemeral).
		Str("config", app.Configs.GetConfigFile()).
		Msg("starting desk")

	soft, hard := bootstrap.CoreDumpLimit()
	log.Debug().Str("soft", soft).Str("hard", hard).Msg("core dump limits")

	if !runEphemeral {
		lock, err := acquireLock()
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn().Err(err).Msg("failed to release desk lock")
			}
		}()
	}
	timer.Mark("lock")

	sched := terminal.NewScheduler()
	defer sched.Close()
	notices := terminal.NewNotices(sched)

	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	vw, vh := terminal.Viewport(width, height)

	desk, err := bootstrap.NewDesk(ctx, app.Config, services(app, sched, notices), vw, vh)
	if err != nil {
		return fmt.Errorf("build desk: %w", err)
	}
	defer desk.Close()
	timer.Mark("desk")

	host := terminal.New(ctx, desk.Document(), desk.Manager(), terminal.Options{
		Theme:     app.Theme,
		Scheduler: sched,
		Notices:   notices,
		OnRefresh: desk.Refresh,
	})

	app.Configs.OnConfigChange(func(cfg *config.Config) {
		sched.Post(func() { desk.Apply(cfg) })
	})
	if err := app.Configs.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	}
	timer.Mark("host")
	timer.Log(ctx)

	program := tea.NewProgram(host,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info().Msg("desk interrupted")
			return nil
		}
		return fmt.Errorf("run desk: %w", err)
	}

	log.Info().Msg("desk closed")
	return nil
}

func acquireLock() (*bootstrap.DeskLock, error) {
	stateDir, err := config.GetStateDir()
	if err != nil {
		return nil, fmt.Errorf("resolve state directory: %w", err)
	}
	lock, err := bootstrap.AcquireDeskLock(stateDir, time.Now())
	if errors.Is(err, bootstrap.ErrDeskRunning) {
		return nil, fmt.Errorf("%w; use --ephemeral for a second desk", err)
	}
	return lock, err
}

func services(app *cli.App, sched *terminal.Scheduler, notices *terminal.Notices) bootstrap.Services {
	cfg := app.Config
	return bootstrap.Services{
		KV:        app.KV(runEphemeral),
		Scheduler: sched,
		Notifier:  notices,
		Opener:    desktop.NewOpener(),
		Printer:   filesystem.NewPrinter(cfg.Print.ExportDir),
		Weather: weather.NewClient(weather.Options{
			BaseURL:   cfg.Widgets.Weather.BaseURL,
			UserAgent: cfg.Widgets.Weather.UserAgent,
		}),
		Now: time.Now,
	}
}

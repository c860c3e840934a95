package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/loofah/internal/adapter"
	"github.com/mmcdole/loofah/internal/adapter/api"
	"github.com/mmcdole/loofah/internal/dashboard"
	"github.com/mmcdole/loofah/internal/domain"
	"github.com/mmcdole/loofah/internal/monitor"
	"github.com/mmcdole/loofah/internal/service"
	"github.com/mmcdole/loofah/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// app holds what every subcommand needs once flags and config are resolved
type app struct {
	configPath string
	serverURL  string
	verbose    bool

	cfg        *adapter.Config
	logger     *slog.Logger // file logger, plus stderr with --verbose
	fileLogger *slog.Logger // never writes to the terminal
	client     *api.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "loofah",
		Short:         "Terminal dashboard for the loofah job board",
		Long:          "Browse synchronized job postings, watch stats, and trigger backend syncs.\nRun without a subcommand to open the dashboard.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().SortFlags = false
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default "+adapter.DefaultConfigDir()+"/config.yaml)")
	root.PersistentFlags().StringVar(&a.serverURL, "server", "", "backend URL, overrides server.url")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "also log to stderr")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newStatsCmd(a),
		newSyncCmd(a),
		newLogsCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads config, logging and the request client
func (a *app) setup() error {
	cfg, err := adapter.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.serverURL != "" {
		cfg.Server.URL = a.serverURL
	}

	fileLogger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		fileLogger = adapter.NullLogger()
	}
	logger := fileLogger
	if a.verbose {
		console := slog.New(adapter.ConsoleHandler(os.Stderr, slog.LevelDebug))
		logger = adapter.TeeLogger(fileLogger, console)
	}
	slog.SetDefault(logger)

	client, err := api.NewClient(cfg.Server.URL, logger,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithUserAgent("loofah/"+Version),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.fileLogger = fileLogger
	a.client = client
	logger.Debug("config loaded", "server", cfg.Server.URL, "version", Version)
	return nil
}

func (a *app) newMonitor(observer domain.SyncObserver, logger *slog.Logger) *monitor.Monitor {
	return monitor.New(service.NewSyncService(a.client, logger), monitor.Options{
		PollInterval: a.cfg.Sync.PollInterval,
		Deadline:     a.cfg.Sync.Deadline,
		Logger:       logger,
		Observer:     observer,
	})
}

// runTUI runs the dashboard. Console logging would corrupt the alt screen,
// so the TUI only logs to file.
func (a *app) runTUI(ctx context.Context) error {
	logger := a.fileLogger
	logger.Info("starting loofah", "version", Version)

	category, err := domain.ParseCategory(a.cfg.UI.DefaultCategory)
	if err != nil {
		return err
	}

	observer := tui.NewChannelObserver()
	mon := a.newMonitor(observer, logger)
	defer mon.Close()

	model := tui.NewModel(tui.Options{
		Items:   service.NewItemService(a.client, logger),
		Stats:   service.NewStatsService(a.client, logger),
		Sync:    mon,
		Browser: adapter.NewLauncher(a.cfg.UI.Browser, a.cfg.UI.BrowserArgs, logger),
		Updates: observer.Updates(),
		Controller: dashboard.New(dashboard.Options{
			Category: category,
			PageSize: a.cfg.UI.PageSize,
			Logger:   logger,
		}),
		Logger: logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

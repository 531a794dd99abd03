package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/syncflow/dashboard/internal/api"
	"github.com/syncflow/dashboard/internal/assistant"
	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/taskstore"
	"github.com/syncflow/dashboard/internal/tui"
)

func newDashboardCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Run the terminal dashboard (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), st.cfg)
		},
	}
}

func runDashboard(ctx context.Context, cfg appConfig) error {
	cleanupLogger, err := logging.Configure(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer cleanupLogger()
	log := logging.NewLogger("dashboard")

	client, err := api.New(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := tui.NewNotifier()
	deps := tui.Deps{
		Ctx:      ctx,
		API:      client,
		Chat:     assistant.NewChat(assistant.NewClient(cfg.LLMURL, cfg.LLMModel, 0)),
		Notifier: notifier,
		Settings: tui.Settings{
			StreamInterval:    cfg.StreamInterval,
			InventoryInterval: cfg.InventoryInterval,
			TailWindow:        cfg.TailWindow,
		},
	}

	// The dashboard stays usable without task storage; the tasks page
	// reports it as unavailable.
	store, err := taskstore.NewStore(ctx, cfg.StorePath)
	if err != nil {
		log.WithError(err).Warn("task store unavailable")
	} else {
		defer store.Close()
		deps.Tasks = taskstore.NewTasks(store)
		log.WithField("path", store.Path()).Debug("task store opened")
	}

	log.WithField("api", client.BaseURL()).Info("starting dashboard")

	app := tui.NewApp(tui.DefaultPages(deps), tui.WithReverseScrollWheel(cfg.ReverseScrollWheel))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	notifier.Attach(p)

	_, err = p.Run()
	app.Close()
	if err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

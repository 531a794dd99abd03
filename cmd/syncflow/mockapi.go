package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/mockapi"
)

func newMockAPICmd(st *cliState) *cobra.Command {
	var addr, fixturesPath string

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve the SyncFlow REST API from fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = st.cfg.MockAddr
			}
			return runMockAPI(cmd, addr, fixturesPath, st.cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from mock-addr)")
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML fixtures file (default: built-in dataset)")
	return cmd
}

func loadFixtures(path string) (*mockapi.Fixtures, error) {
	if path == "" {
		return mockapi.DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	return mockapi.ParseFixtures(data)
}

func runMockAPI(cmd *cobra.Command, addr, fixturesPath string, cfg appConfig) error {
	cleanupLogger, err := logging.Configure(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer cleanupLogger()

	fx, err := loadFixtures(fixturesPath)
	if err != nil {
		return err
	}

	server := mockapi.NewServer(addr, fx)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start mock api: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printMockBanner(cmd, server.Addr(), fixturesPath, len(fx.IPs()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop()
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("mock api shutdown: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "mock api stopped")
	return nil
}

func printMockBanner(cmd *cobra.Command, addr, fixturesPath string, hosts int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	if fixturesPath == "" {
		fixturesPath = "built-in"
	}

	lines := []string{
		"",
		cyan.Bold(true).Render("    SyncFlow mock API") + "  " + dim.Render("v"+version),
		"",
		bold.Render("    Serving"),
		"",
		fmt.Sprintf("    %s  HTTP           %s", check, cyan.Render("http://"+addr)),
		fmt.Sprintf("    %s  Fixtures       %s", check, dim.Render(fixturesPath)),
		fmt.Sprintf("    %s  Hosts          %s", check, dim.Render(fmt.Sprint(hosts))),
		"",
		"    " + dim.Render("Press ") + yellow.Render("Ctrl+C") + dim.Render(" to stop"),
		"",
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
}

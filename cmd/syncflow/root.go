package main

import (
	"github.com/spf13/cobra"
)

// cliState is filled by the root command's persistent pre-run and read by
// the subcommands.
type cliState struct {
	configPath string
	cfg        appConfig
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	rootCmd := &cobra.Command{
		Use:           "syncflow",
		Short:         "SyncFlow: terminal dashboard for employees, tasks and network checkout",
		Long:          "syncflow polls the SyncFlow backend and shows the employee roster, management, tasks, per-IP traffic, an AI assistant and host information in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := loadConfig(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), st.cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", "", "config file (default is $HOME/.config/syncflow/config.yml)")

	rootCmd.AddCommand(
		newDashboardCmd(st),
		newTasksCmd(st),
		newCheckoutCmd(st),
		newAskCmd(st),
		newMockAPICmd(st),
		newVersionCmd(),
	)
	return rootCmd
}

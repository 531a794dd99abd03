package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"%s\n  Version:    %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n",
				title.Render("SyncFlow - Dashboard"), version, commit, buildTime, goVersion)
			return err
		},
	}
}

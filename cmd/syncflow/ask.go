package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syncflow/dashboard/internal/assistant"
)

func newAskCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send one prompt to the assistant and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := assistant.NewClient(st.cfg.LLMURL, st.cfg.LLMModel, 0)
			reply, err := client.Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/syncflow/dashboard/internal/api"
	"github.com/syncflow/dashboard/internal/chart"
	"github.com/syncflow/dashboard/internal/model"
)

func newCheckoutCmd(st *cliState) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "checkout <ip>",
		Short: "Print open ports, policies and hourly traffic for one IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := api.New(st.cfg.APIURL, st.cfg.RequestTimeout)
			if err != nil {
				return err
			}
			detail, err := client.Checkout(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("checkout %s: %w", args[0], err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(detail)
			}
			return printCheckout(cmd.OutOrStdout(), detail)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printCheckout(w io.Writer, d model.CheckoutDetail) error {
	bold := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", bold.Render("Checkout "+d.IP))

	ports := "none"
	if len(d.Ports) > 0 {
		ports = strings.Join(d.Ports, ", ")
	}
	fmt.Fprintf(&b, "  Open ports: %s\n", ports)

	if len(d.Policies) == 0 {
		b.WriteString("  Policies:   No policies found\n")
	} else {
		b.WriteString("  Policies:\n")
		for _, p := range d.Policies {
			fmt.Fprintf(&b, "    #%d %s [%s]\n", p.ID, p.Name, p.Type)
		}
	}

	series := chart.BucketByHour(d.Logs)
	fmt.Fprintf(&b, "  Incoming:   %s\n", summarizeHours(series.Incoming))
	fmt.Fprintf(&b, "  Outgoing:   %s\n", summarizeHours(series.Outgoing))

	_, err := io.WriteString(w, b.String())
	return err
}

func summarizeHours(counts []chart.HourCount) string {
	total, peak, peakHour := 0, 0, ""
	for _, c := range counts {
		total += c.Requests
		if c.Requests > peak {
			peak, peakHour = c.Requests, c.Hour
		}
	}
	if total == 0 {
		return "no requests"
	}
	return fmt.Sprintf("%d requests, peak %d at %s UTC", total, peak, peakHour)
}

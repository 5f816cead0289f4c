// ABOUTME: Alerts command listing spend and anomaly notifications
// ABOUTME: Newest first, with severity and timestamp

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List spend alerts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAlerts(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(ctx context.Context, w io.Writer) int {
	client, _, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	alerts, err := client.Alerts(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, alerts)
		return 0
	}

	if len(alerts) == 0 {
		fmt.Fprintln(w, "No active alerts.")
		return 0
	}

	for _, a := range alerts {
		fmt.Fprintf(w, "[%s] %s  %s\n", a.Severity, a.Timestamp.Format("2006-01-02 15:04"), a.Title)
		if a.Description != "" {
			fmt.Fprintf(w, "    %s\n", a.Description)
		}
	}
	return 0
}

// ABOUTME: UI command launching the interactive terminal dashboard
// ABOUTME: Also wired as the default action when webcost runs bare

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnurajMane/web-cost/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive dashboard",
	Long:  `Launch the full-screen terminal dashboard with cost overview, accounts, alerts, assistant chat, and settings.`,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	// Bare `webcost` opens the dashboard.
	rootCmd.RunE = runUI
}

func runUI(cmd *cobra.Command, args []string) error {
	client, sess, err := newClient()
	if err != nil {
		return err
	}
	return tui.Run(client, sess)
}

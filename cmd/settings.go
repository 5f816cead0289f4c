// ABOUTME: Settings command group for retention and currency preferences
// ABOUTME: Show current values or update them with flags

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	retentionFlag int
	currencyFlag  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSettingsShow(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSettingsSet(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	settingsSetCmd.Flags().IntVar(&retentionFlag, "retention-days", 0, "Cost data retention in days")
	settingsSetCmd.Flags().StringVar(&currencyFlag, "currency", "", "Display currency code (e.g. USD)")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(ctx context.Context, w io.Writer) int {
	client, _, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	settings, err := client.Settings(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, settings)
		return 0
	}

	fmt.Fprintf(w, "Retention: %d days\n", settings.RetentionDays)
	fmt.Fprintf(w, "Currency:  %s\n", settings.Currency)
	return 0
}

func runSettingsSet(ctx context.Context, w io.Writer) int {
	if retentionFlag == 0 && currencyFlag == "" {
		fmt.Fprintln(w, "Error: pass --retention-days and/or --currency")
		return 2
	}

	client, _, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Unset flags keep their current backend values.
	current, err := client.Settings(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	next := *current
	if retentionFlag > 0 {
		next.RetentionDays = retentionFlag
	}
	if currencyFlag != "" {
		next.Currency = strings.ToUpper(currencyFlag)
	}

	saved, err := client.SaveSettings(ctx, next)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, saved)
		return 0
	}
	fmt.Fprintf(w, "Saved. Retention: %d days, currency: %s\n", saved.RetentionDays, saved.Currency)
	return 0
}

// ABOUTME: Costs command group for spend summaries, history, and free tier usage
// ABOUTME: Human-readable tables by default, JSON with --json

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/widgets"
)

var historyDaysFlag int

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Inspect cloud spend",
}

var costsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month-to-date spend, forecast, and change",
	Run:   runCostCommand(runCostsSummary),
}

var costsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Billing history by month",
	Run:   runCostCommand(runCostsMonthly),
}

var costsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Daily spend over a time window",
	Run:   runCostCommand(runCostsHistory),
}

var costsBreakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Current spend by service",
	Run:   runCostCommand(runCostsBreakdown),
}

var freeTierCmd = &cobra.Command{
	Use:   "free-tier",
	Short: "Free tier usage against limits",
	Run:   runCostCommand(runFreeTier),
}

func init() {
	costsHistoryCmd.Flags().IntVar(&historyDaysFlag, "days", 30, "Number of days of history")
	costsCmd.AddCommand(costsSummaryCmd, costsMonthlyCmd, costsHistoryCmd, costsBreakdownCmd)
	rootCmd.AddCommand(costsCmd, freeTierCmd)
}

// runCostCommand wraps a cost handler with signal handling and exit codes.
func runCostCommand(fn func(ctx context.Context, c *api.Client, w io.Writer) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		client, _, err := newOneShotClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if exitCode := fn(ctx, client, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

func runCostsSummary(ctx context.Context, c *api.Client, w io.Writer) int {
	summary, err := c.CostSummary(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, summary)
		return 0
	}

	fmt.Fprintf(w, "Month to date: $%.2f\n", summary.TotalMTD)
	fmt.Fprintf(w, "Forecast:      $%.2f\n", summary.Forecasted)
	fmt.Fprintf(w, "Change:        %+.1f%%\n", summary.ChangePercent)
	return 0
}

func runCostsMonthly(ctx context.Context, c *api.Client, w io.Writer) int {
	invoices, err := c.MonthlyCosts(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, invoices)
		return 0
	}

	fmt.Fprintf(w, "%-12s %10s  %s\n", "MONTH", "COST", "STATUS")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%-12s %10.2f  %s\n", inv.Month, inv.Cost, inv.Status)
	}
	return 0
}

func runCostsHistory(ctx context.Context, c *api.Client, w io.Writer) int {
	points, err := c.CostHistory(ctx, historyDaysFlag)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, points)
		return 0
	}

	fmt.Fprintf(w, "%-12s %10s\n", "DATE", "COST")
	for _, p := range points {
		fmt.Fprintf(w, "%-12s %10.2f\n", p.Date, p.Cost)
	}
	return 0
}

func runCostsBreakdown(ctx context.Context, c *api.Client, w io.Writer) int {
	services, err := c.CostBreakdown(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, services)
		return 0
	}

	fmt.Fprintf(w, "%-24s %10s\n", "SERVICE", "COST")
	for _, s := range services {
		fmt.Fprintf(w, "%-24s %10.2f\n", s.Name, s.Value)
	}
	return 0
}

func runFreeTier(ctx context.Context, c *api.Client, w io.Writer) int {
	usage, err := c.FreeTierStatus(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, usage)
		return 0
	}

	fmt.Fprintf(w, "%-20s %10s %10s %-8s %s\n", "SERVICE", "USED", "LIMIT", "UNIT", "STATUS")
	for _, u := range usage {
		status := widgets.StatusOK
		if u.LimitValue > 0 {
			percent := u.UsageValue / u.LimitValue * 100
			status = widgets.StatusFromPercent(percent, 80, 95)
		}
		fmt.Fprintf(w, "%-20s %10.1f %10.1f %-8s %s\n", u.Service, u.UsageValue, u.LimitValue, u.Unit, status)
	}
	return 0
}

// printJSON writes a value as indented JSON
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

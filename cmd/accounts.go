// ABOUTME: Accounts command group for linked cloud account management
// ABOUTME: List, add, update, remove, and trigger sync for accounts

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AnurajMane/web-cost/internal/api"
)

var (
	accountNameFlag   string
	accountIDFlag     string
	accountRegionFlag string
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage linked cloud accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List linked accounts",
	Run:   runAccountCommand(runAccountsList),
}

var accountsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Link a new account",
	Run:   runAccountCommand(runAccountsAdd),
}

var accountsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a linked account",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountCommandArgs(runAccountsUpdate),
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a linked account",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountCommandArgs(runAccountsRemove),
}

var accountsSyncCmd = &cobra.Command{
	Use:   "sync <id>",
	Short: "Trigger a cost data sync for an account",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountCommandArgs(runAccountsSync),
}

func init() {
	for _, c := range []*cobra.Command{accountsAddCmd, accountsUpdateCmd} {
		c.Flags().StringVar(&accountNameFlag, "name", "", "Display name for the account")
		c.Flags().StringVar(&accountIDFlag, "account-id", "", "Provider account identifier")
		c.Flags().StringVar(&accountRegionFlag, "region", "", "Primary region")
	}
	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd, accountsUpdateCmd, accountsRemoveCmd, accountsSyncCmd)
	rootCmd.AddCommand(accountsCmd)
}

func runAccountCommand(fn func(ctx context.Context, c *api.Client, w io.Writer) int) func(*cobra.Command, []string) {
	return runAccountCommandArgs(func(ctx context.Context, c *api.Client, w io.Writer, args []string) int {
		return fn(ctx, c, w)
	})
}

func runAccountCommandArgs(fn func(ctx context.Context, c *api.Client, w io.Writer, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		client, _, err := newOneShotClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if exitCode := fn(ctx, client, os.Stdout, args); exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

func runAccountsList(ctx context.Context, c *api.Client, w io.Writer) int {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, accounts)
		return 0
	}

	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts linked.")
		return 0
	}

	fmt.Fprintf(w, "%-26s %-20s %-14s %-12s %s\n", "ID", "NAME", "ACCOUNT ID", "REGION", "STATUS")
	for _, a := range accounts {
		status := a.Status
		if status == "" {
			status = "active"
		}
		fmt.Fprintf(w, "%-26s %-20s %-14s %-12s %s\n", a.ID, a.AccountName, a.AccountID, a.Region, status)
	}
	return 0
}

func runAccountsAdd(ctx context.Context, c *api.Client, w io.Writer) int {
	if accountNameFlag == "" || accountIDFlag == "" || accountRegionFlag == "" {
		fmt.Fprintln(w, "Error: --name, --account-id, and --region are required")
		return 2
	}

	account, err := c.CreateAccount(ctx, api.AccountInput{
		AccountName: accountNameFlag,
		AccountID:   accountIDFlag,
		Region:      accountRegionFlag,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, account)
		return 0
	}
	fmt.Fprintf(w, "Linked account %s (%s)\n", account.AccountName, account.ID)
	return 0
}

func runAccountsUpdate(ctx context.Context, c *api.Client, w io.Writer, args []string) int {
	account, err := c.UpdateAccount(ctx, args[0], api.AccountInput{
		AccountName: accountNameFlag,
		AccountID:   accountIDFlag,
		Region:      accountRegionFlag,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, account)
		return 0
	}
	fmt.Fprintf(w, "Updated account %s\n", account.ID)
	return 0
}

func runAccountsRemove(ctx context.Context, c *api.Client, w io.Writer, args []string) int {
	if err := c.DeleteAccount(ctx, args[0]); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Removed account %s\n", args[0])
	return 0
}

func runAccountsSync(ctx context.Context, c *api.Client, w io.Writer, args []string) int {
	if err := c.SyncAccount(ctx, args[0]); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Sync started for account %s\n", args[0])
	return 0
}

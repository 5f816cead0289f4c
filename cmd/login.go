// ABOUTME: Login command exchanging credentials for a persisted session
// ABOUTME: Prompts for anything not passed via flags

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session token",
	Long:  `Authenticate against the backend and persist the session token for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(ctx context.Context, w io.Writer) int {
	_, sess, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	email := loginEmail
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&email).
			Validate(func(v string) error {
				if !strings.Contains(v, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	if err := form.RunWithContext(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.Login(ctx, email, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	user := sess.User()
	if user != nil {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", user.Username, user.Email)
	} else {
		fmt.Fprintln(w, "Signed in.")
	}
	return 0
}

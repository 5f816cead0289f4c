// ABOUTME: Signup command running the two-phase email verification flow
// ABOUTME: Requests a one-time code, then verifies it with the account details

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

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  `Create an account in two steps: a verification code is emailed to you, then you confirm it together with a username and password.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSignup(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
}

func runSignup(ctx context.Context, w io.Writer) int {
	_, sess, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var email string
	emailForm := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Value(&email).
			Validate(func(v string) error {
				if !strings.Contains(v, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			}),
	)).WithTheme(huh.ThemeBase())
	if err := emailForm.RunWithContext(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.SendOTP(ctx, email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Verification code sent to %s\n", email)

	var otp, username, password, confirm string
	detailsForm := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Verification code").Value(&otp),
		huh.NewInput().Title("Username").Value(&username),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm),
	)).WithTheme(huh.ThemeBase())
	if err := detailsForm.RunWithContext(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.CompleteSignup(ctx, email, otp, password, confirm, username); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	user := sess.User()
	if user != nil {
		fmt.Fprintf(w, "Account created. Signed in as %s.\n", user.Username)
	} else {
		fmt.Fprintln(w, "Account created.")
	}
	return 0
}

// ABOUTME: Whoami command showing the identity behind the stored token
// ABOUTME: Exits non-zero when no valid session exists

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

	"github.com/AnurajMane/web-cost/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, w io.Writer) int {
	_, sess, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if sess.Resolve(ctx) != session.StateAuthenticated {
		fmt.Fprintln(w, "Not signed in. Run 'webcost login' first.")
		return 1
	}

	user := sess.User()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Username: %s\n", user.Username)
	fmt.Fprintf(w, "Email:    %s\n", user.Email)
	if user.AvatarURL != "" {
		fmt.Fprintf(w, "Avatar:   %s\n", user.AvatarURL)
	}
	return 0
}

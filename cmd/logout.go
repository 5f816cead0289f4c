// ABOUTME: Logout command discarding the persisted session token
// ABOUTME: Safe to run when no session exists

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		_, sess, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		sess.Logout()
		fmt.Println("Signed out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// ABOUTME: Ask command streaming an assistant reply to stdout
// ABOUTME: Ctrl-C stops the stream without printing further chunks

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant about your cloud spend",
	Long:  `Send a question to the assistant and stream the reply to stdout as it is generated.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAsk(ctx, os.Stdout, strings.Join(args, " ")); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(ctx context.Context, w io.Writer, question string) int {
	client, _, err := newOneShotClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	err = client.AskAssistant(ctx, question, func(chunk string) error {
		_, werr := io.WriteString(w, chunk)
		return werr
	})
	fmt.Fprintln(w)

	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	return 0
}

// ABOUTME: Entry point for the webcost CLI
// ABOUTME: Terminal client for the Cloud Cost Intelligence platform

package main

import (
	"fmt"
	"os"

	"github.com/AnurajMane/web-cost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cli implements the dicebank terminal client.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dicebank",
		Short: "Terminal client for the dicebank game server",
		Long: `dicebank is a terminal client for the dicebank game server.

It can check server health and play games interactively over the
websocket protocol: create or join a room by code, then roll, bank,
or end your turn from the prompt.`,
		SilenceUsage: true,
	}

	defaultServer := os.Getenv("DICEBANK_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Server URL (env: DICEBANK_SERVER)")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

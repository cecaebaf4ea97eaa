package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for RedFox.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redfox",
		Short: "Raw-socket HTTP/1.1 client for security research",
		Long: `RedFox builds and transmits literal HTTP/1.1 requests over raw sockets.

Unlike curl or an HTTP library, RedFox performs no normalization: header
order is fixed, the request line can carry anything, and malformed
requests are a supported use case. Responses are read until the peer
closes the connection and returned byte-for-byte.

Connections can be routed through a SOCKS5 proxy (Tor, an intercepting
proxy) and TLS verification can be relaxed for self-signed assessment
targets.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSendCmd())
	cmd.AddCommand(NewSweepCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

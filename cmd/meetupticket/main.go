// Package main provides the meetupticket binary entry point.
//
// @title Meetup Ticket API
// @version 1.0
// @description Registration for the active meetup event and ticket passes.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "meetupticket/docs"
)

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "meetupticket"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Meetup registration and tickets",
		Long: `meetupticket serves the registration page for the active meetup event,
registers participants against its capacity and renders their ticket.

Configuration is read from the environment (and a .env file outside production).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), migrateCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

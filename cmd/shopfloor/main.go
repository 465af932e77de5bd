package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shopfloor-io/shopfloor/internal/interfaces/cli/migrate"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopfloor",
		Short: "Shopfloor - factory floor operations backend",
		Long:  `Shopfloor tracks shift-based production, quality gates and OEE for plant machines, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

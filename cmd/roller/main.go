package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rollerweb/roller/internal/interfaces/cli/migrate"
	"github.com/rollerweb/roller/internal/interfaces/cli/planet"
	"github.com/rollerweb/roller/internal/interfaces/cli/server"
	"github.com/rollerweb/roller/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "roller",
		Short:   "Roller - a multi-user weblog server",
		Long:    `Roller serves weblog search, entries and AtomPub service documents, and aggregates external feeds into a planet.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		planet.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package planet runs the planet aggregator jobs once from the command line,
// for deployments that schedule them outside the server.
package planet

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/infrastructure/config"
	"github.com/rollerweb/roller/internal/infrastructure/database"
	"github.com/rollerweb/roller/internal/interfaces/aggregator"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planet",
		Short: "Planet feed aggregator",
		Long:  `Fetch subscribed feeds and render the planet pages without starting the server.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Fetch every subscription and store new entries",
			RunE:  runRefresh,
		},
		&cobra.Command{
			Use:   "generate",
			Short: "Render the planet pages into the output directory",
			RunE:  runGenerate,
		},
	)

	return cmd
}

// withPlanet loads configuration, opens the database and hands the wired
// planet jobs to fn. SIGINT cancels the context fn receives.
func withPlanet(cmd *cobra.Command, fn func(ctx context.Context, p *aggregator.Planet) error) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	conn, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	p, err := aggregator.New(conn, cfg.Planet, content.NewService(), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return fn(ctx, p)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	return withPlanet(cmd, func(ctx context.Context, p *aggregator.Planet) error {
		result, err := p.Refresh.Execute(ctx)
		if err != nil {
			return fmt.Errorf("planet refresh failed: %w", err)
		}
		printRefresh(cmd.OutOrStdout(), result)
		return nil
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withPlanet(cmd, func(ctx context.Context, p *aggregator.Planet) error {
		result, err := p.Generate.Execute(ctx)
		if err != nil {
			return fmt.Errorf("planet generation failed: %w", err)
		}
		printGenerate(cmd.OutOrStdout(), result)
		return nil
	})
}

func printRefresh(w io.Writer, r *dto.RefreshResult) {
	fmt.Fprintf(w, "Refreshed %d subscriptions: %d new entries, %d failed\n", r.Subscriptions, r.NewEntries, r.Failed)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printGenerate(w io.Writer, r *dto.GenerateResult) {
	fmt.Fprintf(w, "Wrote %d files\n", len(r.Files))
	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

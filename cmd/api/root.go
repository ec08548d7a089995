package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"videos-api/internal/config"
	"videos-api/internal/database"
	"videos-api/internal/logger"
)

// cfg is loaded once for every subcommand in PersistentPreRunE
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "videos-api",
	Short: "Videos and categories HTTP API",
	Long: `A CRUD API for videos grouped into categories, backed by PostgreSQL.

Configuration is read from the environment (PORT, DATABASE_URL, LOG_LEVEL, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		cfg = loaded
		logger.Init(cfg.Log, cfg.PrettyLogs())
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// openPool connects to the configured database
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, cfg.DB.DatabaseURL(), cfg.DB.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}

// runMigrations applies pending migrations; database.Migrate logs each one
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := database.OpenDB(pool)
	defer db.Close()

	applied, err := database.Migrate(log.Logger.WithContext(ctx), db)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		log.Info().Msg("database schema is up to date")
	}
	return nil
}

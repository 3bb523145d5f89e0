package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AnthoniusHendriyanto/marketplace-api/config"
	"github.com/AnthoniusHendriyanto/marketplace-api/db"
)

func newMigrateCmd(env func() (*config.Config, *slog.Logger)) *cobra.Command {
	var status bool
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := env()
			ctx := cmd.Context()

			pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if status {
				return db.MigrationStatus(ctx, pool)
			}
			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			logger.InfoContext(ctx, "migrations applied")
			return nil
		},
	}
	c.Flags().BoolVar(&status, "status", false, "print migration status instead of migrating")
	return c
}

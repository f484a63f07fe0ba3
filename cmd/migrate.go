package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create collections, tables and indexes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		store, err := openStorage(ctx, config, logger)
		if err != nil {
			return err
		}
		defer store.close(context.Background())

		if err := store.migrate(ctx); err != nil {
			return err
		}

		logger.Info("Migration complete", zap.String("driver", config.Database.Driver))
		return nil
	},
}

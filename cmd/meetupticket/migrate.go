package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"meetupticket/config"
)

func migrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the document schema and unique indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			store, closeStore, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			logger.Info("migration complete", "driver", cfg.StoreDriver)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall migration timeout")
	return cmd
}

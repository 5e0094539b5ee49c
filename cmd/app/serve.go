package main

import (
	"context"
	"time"

	"innkeep/config"
	"innkeep/di"
	"innkeep/helper"
	holdService "innkeep/internal/domains/hold/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background hold sweeper",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := config.Get()

		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				return err
			}
		}

		app := di.InitializeApp()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go runSweeper(ctx, app.Hold, time.Duration(cfg.Hold.SweepIntervalSeconds)*time.Second)

		app.HTTP.OnShutdown(func(shutdownCtx context.Context) {
			cancel()

			if err := app.Kafka.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Kafka client")
			}

			if err := app.Otel.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to flush traces")
			}
		})

		app.HTTP.Serve()

		return nil
	},
}

// runSweeper reclaims lapsed holds on a fixed interval until ctx is done.
// Reads reclaim as well, so the sweeper only bounds how long a room nobody
// looks at stays locked.
func runSweeper(ctx context.Context, hold holdService.Hold, interval time.Duration) {
	if interval <= 0 {
		log.Warn().Msg("Hold sweeper disabled")

		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := hold.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Hold sweep failed")

				continue
			}

			if count > 0 {
				log.Info().Int("rooms", count).Msg("Reclaimed lapsed holds")
			}
		}
	}
}

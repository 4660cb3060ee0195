package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"catalog_reviews/internal/adapters/observability"
	"catalog_reviews/internal/app"
	"catalog_reviews/internal/shared"
	"catalog_reviews/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("driver", cfg.StoreDriver).
		Str("file", cfg.SeedFile).
		Bool("force", cfg.SeedForce).
		Msg("seeder starting")

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	defer store.Close()

	// 2) an empty SEED_FILE falls back to the embedded catalog
	catalog, err := shared.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed failed")
	}

	res, err := app.NewSeeder(store).Seed(ctx, catalog, cfg.SeedForce)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Int("products", res.Products).Int("reviews", res.Reviews).Msg("seeding completed")
}

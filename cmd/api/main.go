package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"catalog_reviews/internal/adapters/auth"
	server "catalog_reviews/internal/adapters/http_server"
	"catalog_reviews/internal/adapters/observability"
	"catalog_reviews/internal/app"
	"catalog_reviews/internal/shared"
	"catalog_reviews/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store failed")
	}
	defer store.Close()

	if cfg.SeedOnStart {
		catalog, err := shared.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load seed failed")
		}
		if _, err := app.NewSeeder(store).Seed(ctx, catalog, cfg.SeedForce); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	// deps
	reviews := app.NewReviewService(store, clockwork.NewRealClock())
	catalog := app.NewCatalogService(store)

	// http
	reg := observability.InitRegistry()
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reviews:    reviews,
		Catalog:    catalog,
		Auth:       auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer),
		WriteLimit: server.RateLimit(cfg.WriteRPS, cfg.WriteBurst),
	})
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: cfg.RequestTimeout}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return observability.Run(gctx, httpSrv, "api", cfg.ShutdownTimeout) })
	if ms := observability.NewMetricsServer(cfg.MetricsAddr, reg); ms != nil {
		g.Go(func() error { return observability.Run(gctx, ms, "metrics", cfg.ShutdownTimeout) })
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server failed")
		return
	}
	log.Info().Msg("bye")
}

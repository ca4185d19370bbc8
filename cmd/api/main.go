package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kkpworldkk-arch/furugi-server/internal/config"
	"github.com/kkpworldkk-arch/furugi-server/internal/geocoder"
	"github.com/kkpworldkk-arch/furugi-server/internal/handler"
	"github.com/kkpworldkk-arch/furugi-server/internal/importer"
	"github.com/kkpworldkk-arch/furugi-server/internal/logger"
	"github.com/kkpworldkk-arch/furugi-server/internal/repository"
	"github.com/kkpworldkk-arch/furugi-server/internal/service"
)

// @title Furugi Shop Map API
// @version 1.0
// @description Shop listing, reconciliation and geocoding service.
// @BasePath /
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := logger.Setup(config.LogLevel, config.LogFile); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	// Database connection
	store, err := repository.Open(ctx, config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate db")
	}

	// Initialize layers
	nominatim := geocoder.NewNominatimClient(
		geocoder.WithBaseURL(config.GeocoderBaseURL),
		geocoder.WithRateLimit(config.GeocoderRateLimit),
	)
	resolver := service.NewGeocodeResolver(nominatim,
		service.WithUserAgent(config.GeocoderUserAgent),
		service.WithCountryHint(config.GeocoderCountryCodes),
		service.WithLookupTimeout(config.GeocoderTimeout),
	)
	runner := importer.NewRunner(store, service.NewReconcileService(resolver))

	if config.SeedOnStart {
		result, err := runner.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot seed shops")
		}
		log.Info().Int("created", result.Created).Int("updated", result.Updated).Msg("seed reconciled")
	}

	shopHandler := handler.NewShopHandler(service.NewShopQueryService(store), runner)
	geocodeHandler := handler.NewGeocodeHandler(resolver)
	r := handler.NewRouter(log.Logger, config.CORSAllowedOrigins, shopHandler, geocodeHandler)

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	schedule, err := scheduleImport(gctx, config, runner)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot schedule import")
	}
	if schedule != nil {
		g.Go(func() error { return schedule.Run(gctx) })
		log.Info().Str("schedule", config.ImportSchedule).Str("file", config.ImportCSVPath).Msg("csv re-import scheduled")
	}
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

// scheduleImport returns nil when no re-import is configured.
func scheduleImport(ctx context.Context, cfg config.Config, runner *importer.Runner) (*importer.Schedule, error) {
	if cfg.ImportSchedule == "" || cfg.ImportCSVPath == "" {
		return nil, nil
	}
	return importer.NewSchedule(ctx, cfg.ImportSchedule, cfg.ImportCSVPath, runner)
}

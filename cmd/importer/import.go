package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kkpworldkk-arch/furugi-server/internal/geocoder"
	"github.com/kkpworldkk-arch/furugi-server/internal/importer"
	"github.com/kkpworldkk-arch/furugi-server/internal/models"
	"github.com/kkpworldkk-arch/furugi-server/internal/repository"
	"github.com/kkpworldkk-arch/furugi-server/internal/service"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import shops from a CSV file",
	Long:  "Reads a headered CSV file and creates or updates each shop keyed by name and address. The whole file is one batch.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRunner(cmd, func(ctx context.Context, runner *importer.Runner) (models.ReconcileResult, error) {
			return runner.ImportFile(ctx, importFile)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reconcile the bundled shop list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRunner(cmd, func(ctx context.Context, runner *importer.Runner) (models.ReconcileResult, error) {
			return runner.Seed(ctx)
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the CSV file to import")
	_ = importCmd.MarkFlagRequired("file")
}

func withRunner(cmd *cobra.Command, run func(context.Context, *importer.Runner) (models.ReconcileResult, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	resolver := service.NewGeocodeResolver(
		geocoder.NewNominatimClient(
			geocoder.WithBaseURL(cfg.GeocoderBaseURL),
			geocoder.WithRateLimit(cfg.GeocoderRateLimit),
		),
		service.WithUserAgent(cfg.GeocoderUserAgent),
		service.WithCountryHint(cfg.GeocoderCountryCodes),
		service.WithLookupTimeout(cfg.GeocoderTimeout),
	)
	runner := importer.NewRunner(store, service.NewReconcileService(resolver))

	result, err := run(ctx, runner)
	if err != nil {
		return err
	}

	log.Info().Int("created", result.Created).Int("updated", result.Updated).Msg("import finished")
	return nil
}

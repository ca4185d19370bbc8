package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
	"github.com/kkpworldkk-arch/furugi-server/internal/repository"
	"github.com/kkpworldkk-arch/furugi-server/internal/seed"
	"github.com/kkpworldkk-arch/furugi-server/internal/service"
)

// BatchStore opens write sessions.
type BatchStore interface {
	BeginBatch(ctx context.Context) (repository.Batch, error)
}

// Runner runs one reconciliation batch per import.
type Runner struct {
	store BatchStore
	svc   *service.ReconcileService
}

// NewRunner creates a new import runner
func NewRunner(store BatchStore, svc *service.ReconcileService) *Runner {
	return &Runner{store: store, svc: svc}
}

// ImportRows reconciles rows in a single batch. Rows are geocoded before the
// batch opens so lookups never hold the store. Nothing is committed when any
// row fails.
func (r *Runner) ImportRows(ctx context.Context, rows []models.RawRow) (models.ReconcileResult, error) {
	ctx = service.WithBatchLogger(ctx)
	records := r.svc.PrepareRows(ctx, rows)

	batch, err := r.store.BeginBatch(ctx)
	if err != nil {
		return models.ReconcileResult{}, err
	}
	defer func() {
		if err := batch.Rollback(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("batch rollback failed")
		}
	}()

	return r.svc.Reconcile(ctx, records, batch)
}

// ImportFile reads a CSV file and reconciles it.
func (r *Runner) ImportFile(ctx context.Context, path string) (models.ReconcileResult, error) {
	rows, err := ReadCSV(path)
	if err != nil {
		return models.ReconcileResult{}, err
	}
	zerolog.Ctx(ctx).Info().Str("file", path).Int("rows", len(rows)).Msg("importing csv")
	return r.ImportRows(ctx, rows)
}

// Seed reconciles the bundled shop list.
func (r *Runner) Seed(ctx context.Context) (models.ReconcileResult, error) {
	rows, err := seed.Rows()
	if err != nil {
		return models.ReconcileResult{}, fmt.Errorf("importer: load seed: %w", err)
	}
	return r.ImportRows(ctx, rows)
}

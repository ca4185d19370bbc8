package importer

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Schedule re-imports a CSV file on a cron spec.
type Schedule struct {
	cron *cron.Cron
}

// NewSchedule registers a re-import of path. Overlapping runs are skipped.
func NewSchedule(ctx context.Context, spec, path string, runner *Runner) (*Schedule, error) {
	logger := zerolog.Ctx(ctx)
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(spec, func() {
		result, err := runner.ImportFile(ctx, path)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("scheduled import failed")
			return
		}
		logger.Info().
			Str("file", path).
			Int("created", result.Created).
			Int("updated", result.Updated).
			Msg("scheduled import finished")
	})
	if err != nil {
		return nil, fmt.Errorf("importer: schedule %q: %w", spec, err)
	}
	return &Schedule{cron: c}, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running import to finish.
func (s *Schedule) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}

// cronLogger routes cron's own messages into zerolog. Info is chatty
// (wake, run, skip) and goes to debug.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

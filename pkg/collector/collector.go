package collector

import (
	"followsnap/pkg/config"
	"followsnap/pkg/logger"
	"followsnap/pkg/metrics"
	"followsnap/pkg/pacing"
	"followsnap/pkg/ratelimit"
	"followsnap/pkg/snapshot"
)

// New builds a ready-to-run accumulator from configuration: uniform page and
// cycle pacing, the optional request ceiling and the empty-cycle threshold.
func New(cfg *config.Config, fetcher PageFetcher, cp Checkpointer, target int, seed *snapshot.Set, rec metrics.Recorder, log logger.Logger) *Accumulator {
	runner := NewCycleRunner(
		fetcher,
		pacing.NewUniform(cfg.Pacing.PageDelayMin, cfg.Pacing.PageDelayMax),
		ratelimit.NewRequestCeiling(cfg.HTTP.RequestsPerMinute),
		rec,
		log,
	)

	return NewAccumulator(runner, cp, Options{
		Target:              target,
		EmptyCycleThreshold: cfg.Collector.EmptyCycleThreshold,
		CyclePacing:         pacing.NewUniform(cfg.Pacing.CycleDelayMin, cfg.Pacing.CycleDelayMax),
		Seed:                seed,
	}, rec, log)
}

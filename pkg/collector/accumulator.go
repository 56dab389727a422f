package collector

import (
	"context"
	"fmt"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/logger"
	"followsnap/pkg/metrics"
	"followsnap/pkg/pacing"
	"followsnap/pkg/snapshot"
)

// DefaultEmptyCycleThreshold is how many consecutive empty cycles, with
// nothing accumulated yet, end the run
const DefaultEmptyCycleThreshold = 5

// Options configure an Accumulator
type Options struct {
	// Target is the number of unique identifiers that ends the run
	Target int
	// EmptyCycleThreshold defaults to DefaultEmptyCycleThreshold when <= 0
	EmptyCycleThreshold int
	// CyclePacing is consulted after every checkpoint; nil never waits
	CyclePacing pacing.Strategy
	// Seed pre-loads the master set, e.g. from an interrupted run
	Seed *snapshot.Set
}

// Summary describes a finished run
type Summary struct {
	Cycles        int
	Total         int
	Target        int
	Path          string
	TargetReached bool
}

// Accumulator owns the master set of a run. It merges cycles into it,
// checkpoints after each one and decides when to stop.
type Accumulator struct {
	runner     Cycler
	checkpoint Checkpointer
	opts       Options
	metrics    metrics.Recorder
	logger     logger.Logger

	master      *snapshot.Set
	cycles      int
	emptyStreak int
}

// NewAccumulator creates an accumulator
func NewAccumulator(runner Cycler, cp Checkpointer, opts Options, rec metrics.Recorder, log logger.Logger) *Accumulator {
	if opts.EmptyCycleThreshold <= 0 {
		opts.EmptyCycleThreshold = DefaultEmptyCycleThreshold
	}
	if opts.CyclePacing == nil {
		opts.CyclePacing = pacing.None()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = logger.GetLogger()
	}

	master := snapshot.NewSet()
	master.Merge(opts.Seed)

	return &Accumulator{
		runner:     runner,
		checkpoint: cp,
		opts:       opts,
		metrics:    rec,
		logger:     log,
		master:     master,
	}
}

// Master returns a copy of the accumulated set
func (a *Accumulator) Master() *snapshot.Set {
	return a.master.Clone()
}

// Run drives cycles until the master set reaches the target or the run can no
// longer make progress. It has no iteration cap. The master set is written to
// the checkpoint on every exit path.
func (a *Accumulator) Run(ctx context.Context) (Summary, error) {
	a.metrics.MasterSize(a.master.Len(), a.opts.Target)
	a.logger.InfoWithFields("collection started", map[string]interface{}{
		"target": a.opts.Target,
		"seeded": a.master.Len(),
		"path":   a.checkpoint.Path(),
	})

	for !a.targetReached() {
		a.cycles++
		result := a.runner.Run(ctx, a.cycles)
		cycleUnique := result.Set.Len()

		added := a.master.Merge(result.Set)
		a.metrics.CycleFinished(string(result.Outcome), cycleUnique, added)
		a.metrics.MasterSize(a.master.Len(), a.opts.Target)
		logger.LogCycleStatus(a.logger, a.cycles, cycleUnique, added, a.master.Len(), a.opts.Target)

		if cycleUnique == 0 {
			a.emptyStreak++
		} else {
			a.emptyStreak = 0
		}

		if result.Canceled() {
			return a.finish(result.Err)
		}
		if a.targetReached() {
			break
		}
		if result.Fatal() {
			a.logger.ErrorWithFields("cycle failed with an unrecoverable error", map[string]interface{}{
				"cycle": a.cycles,
				"kind":  string(errs.TypeOf(result.Err)),
				"error": result.Err.Error(),
			})
			return a.finish(result.Err)
		}
		if a.emptyStreak >= a.opts.EmptyCycleThreshold && a.master.Len() == 0 {
			a.logger.ErrorWithFields("no followers collected, credentials or network are likely broken", map[string]interface{}{
				"empty_cycles": a.emptyStreak,
			})
			return a.finish(errs.New(errs.ErrorTypeSustainedFailure,
				fmt.Sprintf("%d consecutive cycles returned no followers", a.emptyStreak)))
		}

		a.save()

		delay := a.opts.CyclePacing.Next()
		a.logger.InfoWithFields("waiting before next cycle", map[string]interface{}{
			"delay": delay,
		})
		if err := pacing.Sleep(ctx, delay); err != nil {
			return a.finish(errs.Wrap(errs.ErrorTypeCanceled, err, "run interrupted"))
		}
	}

	a.logger.InfoWithFields("target reached", map[string]interface{}{
		"total":  a.master.Len(),
		"target": a.opts.Target,
		"cycles": a.cycles,
	})
	return a.finish(nil)
}

func (a *Accumulator) targetReached() bool {
	return a.master.Len() >= a.opts.Target
}

// save writes a checkpoint. Failures are logged and the run carries on in
// memory; the next checkpoint rewrites the whole set anyway.
func (a *Accumulator) save() error {
	err := a.checkpoint.Save(a.master)
	a.metrics.CheckpointWritten(err == nil)
	if err != nil {
		a.logger.WarnWithFields("checkpoint failed, continuing in memory", map[string]interface{}{
			"path":  a.checkpoint.Path(),
			"error": err.Error(),
		})
	}
	return err
}

// finish performs the final write and builds the summary. A failed final
// write is only reported as the run's error when nothing worse happened.
func (a *Accumulator) finish(runErr error) (Summary, error) {
	saveErr := a.save()

	summary := Summary{
		Cycles:        a.cycles,
		Total:         a.master.Len(),
		Target:        a.opts.Target,
		Path:          a.checkpoint.Path(),
		TargetReached: runErr == nil && a.targetReached(),
	}

	if runErr != nil {
		return summary, runErr
	}
	if saveErr != nil {
		return summary, saveErr
	}
	return summary, nil
}

package collector

import (
	"context"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/instagram"
	"followsnap/pkg/logger"
	"followsnap/pkg/metrics"
	"followsnap/pkg/pacing"
	"followsnap/pkg/ratelimit"
	"followsnap/pkg/snapshot"
)

// Outcome is the terminal state of a cycle
type Outcome string

const (
	// OutcomeCompleted means the API reported no further pages
	OutcomeCompleted Outcome = "completed"
	// OutcomeAborted means a page failed or the run was interrupted
	OutcomeAborted Outcome = "aborted"
)

// CycleResult is what one traversal produced. Set is never nil and holds
// every identifier gathered before the cycle ended, including on abort.
type CycleResult struct {
	Set     *snapshot.Set
	Outcome Outcome
	Pages   int
	Err     error
}

// Canceled reports whether the cycle stopped because the run was interrupted
func (r CycleResult) Canceled() bool {
	return errs.Is(r.Err, errs.ErrorTypeCanceled)
}

// Fatal reports whether the cycle failed in a way another cycle cannot fix,
// such as a request that could not be built
func (r CycleResult) Fatal() bool {
	return r.Err != nil && !r.Canceled() && !errs.IsRecoverable(errs.TypeOf(r.Err))
}

// CycleRunner follows the cursor chain from the first page to the last
type CycleRunner struct {
	fetcher PageFetcher
	pacing  pacing.Strategy
	limiter ratelimit.Limiter
	metrics metrics.Recorder
	logger  logger.Logger
}

// NewCycleRunner creates a runner. A nil strategy never waits between pages,
// a nil limiter imposes no ceiling and a nil recorder discards metrics.
func NewCycleRunner(fetcher PageFetcher, pages pacing.Strategy, limiter ratelimit.Limiter, rec metrics.Recorder, log logger.Logger) *CycleRunner {
	if pages == nil {
		pages = pacing.None()
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &CycleRunner{
		fetcher: fetcher,
		pacing:  pages,
		limiter: limiter,
		metrics: rec,
		logger:  log,
	}
}

// Run traverses the follower list once, starting from an empty cursor.
// A page failure abandons the rest of the traversal without retrying.
func (r *CycleRunner) Run(ctx context.Context, cycle int) CycleResult {
	result := CycleResult{Set: snapshot.NewSet(), Outcome: OutcomeAborted}
	log := r.logger.WithField("cycle", cycle)

	var cursor instagram.Cursor
	for page := 1; ; page++ {
		if err := r.limiter.Wait(ctx); err != nil {
			result.Err = interrupted(ctx, err)
			return result
		}

		p, err := r.fetcher.FetchFollowersPage(ctx, cursor)
		if err != nil {
			if ctx.Err() != nil {
				result.Err = interrupted(ctx, err)
				return result
			}
			kind := errs.TypeOf(err)
			r.metrics.PageFailed(string(kind))
			log.WarnWithFields("cycle aborted", map[string]interface{}{
				"page":         page,
				"kind":         string(kind),
				"error":        err.Error(),
				"cycle_unique": result.Set.Len(),
			})
			result.Err = err
			return result
		}

		result.Pages++
		result.Set.Add(p.Usernames...)
		r.metrics.PageFetched(len(p.Usernames))
		logger.LogPage(log, cycle, page, result.Set.Len(), p.Usernames)

		if !p.HasMore {
			result.Outcome = OutcomeCompleted
			return result
		}
		if p.NextCursor.IsZero() {
			log.WarnWithFields("more pages reported without a cursor, ending cycle", map[string]interface{}{
				"page": page,
			})
			result.Outcome = OutcomeCompleted
			return result
		}
		cursor = p.NextCursor

		delay := r.pacing.Next()
		log.DebugWithFields("waiting before next page", map[string]interface{}{
			"delay": delay,
		})
		if err := pacing.Sleep(ctx, delay); err != nil {
			result.Err = interrupted(ctx, err)
			return result
		}
	}
}

func interrupted(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return errs.Wrap(errs.ErrorTypeCanceled, err, "cycle interrupted")
}

package collector

import (
	"context"
	"sync"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/instagram"
	"followsnap/pkg/snapshot"
)

type fetchStep struct {
	page *instagram.Page
	err  error
}

func page(hasMore bool, next string, users ...string) fetchStep {
	return fetchStep{page: &instagram.Page{Usernames: users, HasMore: hasMore, NextCursor: instagram.Cursor(next)}}
}

func failure(kind errs.ErrorType) fetchStep {
	return fetchStep{err: errs.New(kind, "scripted failure")}
}

// fakeFetcher replays scripted pages and records the cursors it was asked for
type fakeFetcher struct {
	steps   []fetchStep
	cursors []instagram.Cursor
	onFetch func(call int)
}

func (f *fakeFetcher) FetchFollowersPage(ctx context.Context, cursor instagram.Cursor) (*instagram.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "request canceled")
	}
	f.cursors = append(f.cursors, cursor)
	call := len(f.cursors)
	if f.onFetch != nil {
		f.onFetch(call)
	}
	if call > len(f.steps) {
		return nil, errs.New(errs.ErrorTypeNetwork, "script exhausted")
	}
	step := f.steps[call-1]
	return step.page, step.err
}

// fakeCycler returns one scripted result per cycle, repeating the last one
type fakeCycler struct {
	results []CycleResult
	calls   int
	onRun   func(cycle int)
}

func (c *fakeCycler) Run(ctx context.Context, cycle int) CycleResult {
	c.calls++
	if c.onRun != nil {
		c.onRun(cycle)
	}
	i := c.calls - 1
	if i >= len(c.results) {
		i = len(c.results) - 1
	}
	r := c.results[i]
	r.Set = r.Set.Clone()
	return r
}

func completed(users ...string) CycleResult {
	return CycleResult{Set: snapshot.NewSet(users...), Outcome: OutcomeCompleted}
}

func aborted(kind errs.ErrorType, users ...string) CycleResult {
	return CycleResult{Set: snapshot.NewSet(users...), Outcome: OutcomeAborted, Err: errs.New(kind, "scripted")}
}

// fakeCheckpointer keeps every saved listing in memory
type fakeCheckpointer struct {
	saves [][]string
	fail  map[int]bool
}

func (f *fakeCheckpointer) Save(set *snapshot.Set) error {
	attempt := len(f.saves) + 1
	f.saves = append(f.saves, set.Sorted())
	if f.fail[attempt] {
		return errs.New(errs.ErrorTypePersistence, "disk full")
	}
	return nil
}

func (f *fakeCheckpointer) Path() string {
	return "memory"
}

func (f *fakeCheckpointer) last() []string {
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

// fakeRecorder counts metric events
type fakeRecorder struct {
	mu          sync.Mutex
	pages       int
	failures    map[string]int
	outcomes    map[string]int
	checkpoints map[bool]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{failures: map[string]int{}, outcomes: map[string]int{}, checkpoints: map[bool]int{}}
}

func (r *fakeRecorder) PageFetched(int) {
	r.mu.Lock()
	r.pages++
	r.mu.Unlock()
}

func (r *fakeRecorder) PageFailed(kind string) {
	r.mu.Lock()
	r.failures[kind]++
	r.mu.Unlock()
}

func (r *fakeRecorder) CycleFinished(outcome string, unique, added int) {
	r.mu.Lock()
	r.outcomes[outcome]++
	r.mu.Unlock()
}

func (r *fakeRecorder) MasterSize(int, int) {}

func (r *fakeRecorder) CheckpointWritten(ok bool) {
	r.mu.Lock()
	r.checkpoints[ok]++
	r.mu.Unlock()
}

package collector

import (
	"context"

	"followsnap/pkg/instagram"
	"followsnap/pkg/snapshot"
)

// PageFetcher performs exactly one page request. Implementations must not
// sleep or retry; pacing belongs to the cycle runner.
type PageFetcher interface {
	FetchFollowersPage(ctx context.Context, cursor instagram.Cursor) (*instagram.Page, error)
}

// Cycler runs one complete pagination traversal
type Cycler interface {
	Run(ctx context.Context, cycle int) CycleResult
}

// Checkpointer persists the master set
type Checkpointer interface {
	Save(set *snapshot.Set) error
	Path() string
}

package diff

import (
	"followsnap/pkg/snapshot"
)

// Result is the membership delta between two snapshots
type Result struct {
	Lost      []snapshot.Identifier
	Gained    []snapshot.Identifier
	OldCount  int
	NewCount  int
	NetChange int
}

// Compute compares two snapshots without modifying either. Lost and Gained
// are sorted; either may be empty but neither is nil.
func Compute(old, current *snapshot.Set) Result {
	lost := old.Difference(current)
	if lost == nil {
		lost = []snapshot.Identifier{}
	}
	gained := current.Difference(old)
	if gained == nil {
		gained = []snapshot.Identifier{}
	}

	return Result{
		Lost:      lost,
		Gained:    gained,
		OldCount:  old.Len(),
		NewCount:  current.Len(),
		NetChange: current.Len() - old.Len(),
	}
}

// Unchanged reports whether both snapshots hold the same identifiers
func (r Result) Unchanged() bool {
	return len(r.Lost) == 0 && len(r.Gained) == 0
}

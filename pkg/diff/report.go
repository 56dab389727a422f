package diff

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/snapshot"
)

// DefaultReportFile is overwritten by every diff run
const DefaultReportFile = "difference.txt"

const (
	noneLost   = "N/A - No followers were lost."
	noneGained = "N/A - No new followers were gained."
)

// Report is a rendered comparison of two snapshot files
type Report struct {
	OldPath     string
	NewPath     string
	GeneratedAt time.Time
	Result      Result
}

// Compare loads both snapshot files and computes their delta
func Compare(oldPath, newPath string) (*Report, error) {
	old, err := snapshot.Read(oldPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to load old snapshot")
	}
	current, err := snapshot.Read(newPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to load new snapshot")
	}

	return &Report{
		OldPath:     oldPath,
		NewPath:     newPath,
		GeneratedAt: time.Now(),
		Result:      Compute(old, current),
	}, nil
}

// Render writes the report text. Lines are joined with newlines and the
// report does not end with one.
func (r *Report) Render(w io.Writer) error {
	wide := strings.Repeat("-", 70)
	narrow := strings.Repeat("-", 40)
	res := r.Result

	lines := []string{
		wide,
		"Follower Difference Report Generated: " + r.GeneratedAt.Format("2006-01-02 15:04:05"),
		wide,
		"Comparison Basis:",
		fmt.Sprintf("  - OLD Snapshot: %s (%d followers)", r.OldPath, res.OldCount),
		fmt.Sprintf("  - NEW Snapshot: %s (%d followers)", r.NewPath, res.NewCount),
		wide,
		"SUMMARY OF CHANGES",
		"------------------",
		fmt.Sprintf("Total Lost Followers (Unfollowed): %d", len(res.Lost)),
		fmt.Sprintf("Total New Followers:             %d", len(res.Gained)),
		fmt.Sprintf("Net Change in Follower Count:    %+d (Total: %d)", res.NetChange, res.NewCount),
		wide,
	}

	lines = append(lines, "\nLIST OF LOST FOLLOWERS (In OLD, Not in NEW):", narrow)
	lines = appendOrNone(lines, res.Lost, noneLost)

	lines = append(lines, "\n\nLIST OF NEW FOLLOWERS (In NEW, Not in OLD):", narrow)
	lines = appendOrNone(lines, res.Gained, noneGained)

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// String renders the report into a string
func (r *Report) String() string {
	var b strings.Builder
	r.Render(&b)
	return b.String()
}

// WriteFile replaces path with the rendered report
func (r *Report) WriteFile(path string) error {
	if path == "" {
		path = DefaultReportFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.Wrap(errs.ErrorTypePersistence, err, "failed to create report directory")
		}
	}
	if err := os.WriteFile(path, []byte(r.String()), 0644); err != nil {
		return errs.Wrap(errs.ErrorTypePersistence, err, fmt.Sprintf("failed to write report %s", path))
	}
	return nil
}

func appendOrNone(lines, ids []string, none string) []string {
	if len(ids) == 0 {
		return append(lines, none)
	}
	return append(lines, ids...)
}

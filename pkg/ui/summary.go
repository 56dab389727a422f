package ui

import (
	"fmt"

	"followsnap/pkg/collector"
	"followsnap/pkg/diff"
)

// PrintRunSummary reports how a collection run ended
func (p *Printer) PrintRunSummary(s collector.Summary, err error) {
	p.PrintRule()
	switch {
	case err == nil && s.TargetReached:
		p.PrintSuccess(fmt.Sprintf("Target reached: %d unique followers (target %d)", s.Total, s.Target))
	case err != nil:
		p.PrintWarning(fmt.Sprintf("Run stopped with %d unique followers (target %d)", s.Total, s.Target))
	default:
		p.PrintWarning(fmt.Sprintf("Run ended with %d unique followers (target %d)", s.Total, s.Target))
	}
	p.PrintInfo("Cycles", s.Cycles)
	p.PrintInfo("Snapshot", s.Path)
	p.PrintRule()
}

// PrintDiffSummary reports the outcome of a comparison
func (p *Printer) PrintDiffSummary(r diff.Result, reportPath string) {
	p.PrintSuccess("Analysis complete!")
	if r.Unchanged() {
		p.PrintInfo("Followers", "no changes between snapshots")
	}
	p.PrintInfo("Lost", len(r.Lost))
	p.PrintInfo("Gained", len(r.Gained))
	p.PrintInfo("Net change", fmt.Sprintf("%+d", r.NetChange))
	p.PrintInfo("Report saved to", reportPath)
	p.PrintRule()
}

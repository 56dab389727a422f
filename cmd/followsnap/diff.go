package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"followsnap/pkg/config"
	"followsnap/pkg/diff"
	errs "followsnap/pkg/errors"
	"followsnap/pkg/logger"
	"followsnap/pkg/ui"
)

var diffOutput string

// diffCmd compares two snapshot files
var diffCmd = &cobra.Command{
	Use:   "diff <old_snapshot> <new_snapshot>",
	Short: "Report followers lost and gained between two snapshots",
	Long: `Compare two snapshot files written by the collector.

The report lists the followers present in the old snapshot but missing from
the new one, the followers that are new, and the net change in count. It is
written to difference.txt in the current directory, replacing any previous
report, unless --output names another file.`,
	Example: `  followsnap diff followers_20240101_120000.txt followers_20240201_120000.txt
  followsnap diff old.txt new.txt --output reports/february.txt`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errs.New(errs.ErrorTypeConfig,
				fmt.Sprintf("expected <old_snapshot> <new_snapshot>, got %d argument(s)", len(args)))
		}
		return nil
	},
	RunE:          runDiff,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "", "report file (default: difference.txt)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	flags := globalFlags(cmd)
	if diffOutput != "" {
		flags["diff-report"] = diffOutput
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "failed to load configuration")
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "failed to initialize logger")
	}

	report, err := diff.Compare(args[0], args[1])
	if err != nil {
		return err
	}

	if err := report.WriteFile(cfg.Output.DiffReport); err != nil {
		return err
	}

	logger.GetLogger().InfoWithFields("diff report written", map[string]interface{}{
		"old":    args[0],
		"new":    args[1],
		"lost":   len(report.Result.Lost),
		"gained": len(report.Result.Gained),
		"path":   cfg.Output.DiffReport,
	})

	ui.Stdout(cfg.Logging.NoColor).PrintDiffSummary(report.Result, cfg.Output.DiffReport)
	return nil
}

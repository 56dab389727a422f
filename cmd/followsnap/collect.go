package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"followsnap/pkg/checkpoint"
	"followsnap/pkg/collector"
	"followsnap/pkg/config"
	errs "followsnap/pkg/errors"
	"followsnap/pkg/instagram"
	"followsnap/pkg/logger"
	"followsnap/pkg/metrics"
	"followsnap/pkg/request"
	"followsnap/pkg/snapshot"
	"followsnap/pkg/ui"
)

var (
	// Collect command flags
	outputDir           string
	resumeFrom          string
	metricsAddr         string
	apiHost             string
	pageDelayMin        time.Duration
	pageDelayMax        time.Duration
	cycleDelayMin       time.Duration
	cycleDelayMax       time.Duration
	emptyCycleThreshold int
	requestTimeout      time.Duration
	requestsPerMinute   int
)

// collectCmd is the explicit form of the root command
var collectCmd = &cobra.Command{
	Use:   "collect <request_file> <target_count>",
	Short: "Collect followers until the target count is reached",
	Long: `Collect the follower list described by a captured request file.

The request file is the raw text of the browser's request to
/api/v1/friendships/<id>/followers/, starting with the GET line and
including at least the Cookie and X-IG-WWW-Claim headers.

The snapshot is written to <output-dir>/followers_YYYYMMDD_HHMMSS.txt after
every pass and once more when the run ends, including on Ctrl+C.`,
	Example: `  followsnap collect request.txt 1500
  followsnap collect request.txt 1500 --output-dir ./snapshots
  followsnap collect request.txt 3000 --resume ./snapshots/followers_20240101_120000.txt`,
	Args:          collectArgs,
	RunE:          runCollect,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	// The root command collects too, so it carries the same flags
	for _, cmd := range []*cobra.Command{rootCmd, collectCmd} {
		f := cmd.Flags()
		f.StringVarP(&outputDir, "output-dir", "o", "", "directory for snapshot files (default: current directory)")
		f.StringVar(&resumeFrom, "resume", "", "seed the run with an earlier snapshot file")
		f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
		f.DurationVar(&pageDelayMin, "page-delay-min", 0, "minimum pause between pages (default 4s)")
		f.DurationVar(&pageDelayMax, "page-delay-max", 0, "maximum pause between pages (default 12s)")
		f.DurationVar(&cycleDelayMin, "cycle-delay-min", 0, "minimum pause between passes (default 30s)")
		f.DurationVar(&cycleDelayMax, "cycle-delay-max", 0, "maximum pause between passes (default 60s)")
		f.IntVar(&emptyCycleThreshold, "empty-cycle-threshold", 0, "consecutive empty passes that abort a run with no results (default 5)")
		f.DurationVar(&requestTimeout, "timeout", 0, "HTTP request timeout (default 10s)")
		f.IntVar(&requestsPerMinute, "requests-per-minute", 0, "hard ceiling on request rate, 0 for none")
		f.StringVar(&apiHost, "api-host", instagram.BaseURL, "host serving the followers API")
		f.MarkHidden("api-host")
	}
}

// collectArgs validates <request_file> <target_count>
func collectArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errs.New(errs.ErrorTypeConfig,
			fmt.Sprintf("expected <request_file> <target_count>, got %d argument(s)", len(args)))
	}
	_, err := parseTarget(args[1])
	return err
}

// parseTarget accepts a positive integer target count
func parseTarget(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.New(errs.ErrorTypeConfig, fmt.Sprintf("target count %q is not a number", s))
	}
	if n <= 0 {
		return 0, errs.New(errs.ErrorTypeConfig, fmt.Sprintf("target count must be positive, got %d", n))
	}
	return n, nil
}

// collectFlags returns the collect flags that were set explicitly
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := globalFlags(cmd)
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("output-dir") {
		flags["output-dir"] = outputDir
	}
	if changed("metrics-addr") {
		flags["metrics-addr"] = metricsAddr
	}
	if changed("page-delay-min") {
		flags["page-delay-min"] = pageDelayMin
	}
	if changed("page-delay-max") {
		flags["page-delay-max"] = pageDelayMax
	}
	if changed("cycle-delay-min") {
		flags["cycle-delay-min"] = cycleDelayMin
	}
	if changed("cycle-delay-max") {
		flags["cycle-delay-max"] = cycleDelayMax
	}
	if changed("empty-cycle-threshold") {
		flags["empty-cycle-threshold"] = emptyCycleThreshold
	}
	if changed("timeout") {
		flags["timeout"] = requestTimeout
	}
	if changed("requests-per-minute") {
		flags["requests-per-minute"] = requestsPerMinute
	}
	return flags
}

func runCollect(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[1])
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile, collectFlags(cmd))
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "failed to load configuration")
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "failed to initialize logger")
	}
	runID := ulid.Make().String()
	log := logger.WithField("run_id", runID)

	printer := ui.Stdout(cfg.Logging.NoColor)
	printer.PrintBanner()

	runCfg, err := request.LoadWithHost(args[0], apiHost)
	if err != nil {
		request.WriteQuickGuide(os.Stderr)
		return err
	}
	log.InfoWithFields("request loaded", map[string]interface{}{
		"target_id": runCfg.TargetID,
		"headers":   len(runCfg.Headers),
	})

	var seed *snapshot.Set
	if resumeFrom != "" {
		seed, err = checkpoint.LoadSeed(resumeFrom, log)
		if err != nil {
			return errs.Wrap(errs.ErrorTypeConfig, err, "failed to load resume snapshot")
		}
	}

	cp, err := checkpoint.NewManager(cfg.Output.Directory, cfg.Output.FilePrefix, time.Now(), log)
	if err != nil {
		return err
	}

	printer.PrintInfo("Target account", runCfg.TargetID)
	printer.PrintInfo("Target count", target)
	printer.PrintInfo("Snapshot", cp.Path())
	printer.PrintInfo("Run", runID)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.New()
	if cfg.Metrics.ListenAddress != "" {
		addr, _, err := rec.Serve(ctx, cfg.Metrics.ListenAddress)
		if err != nil {
			return errs.Wrap(errs.ErrorTypeConfig, err, "failed to start metrics endpoint")
		}
		log.InfoWithFields("metrics endpoint listening", map[string]interface{}{
			"address": addr.String(),
		})
	}

	client := instagram.NewClient(runCfg.BaseURL, runCfg.Headers, cfg.HTTP.Timeout, log)
	client.SetPageSize(cfg.Collector.PageSize)

	summary, err := collector.New(cfg, client, cp, target, seed, rec, log).Run(ctx)
	printer.PrintRunSummary(summary, err)
	if err != nil {
		log.WithError(err).ErrorWithFields("collection failed", map[string]interface{}{
			"kind":  string(errs.TypeOf(err)),
			"total": summary.Total,
		})
		return err
	}

	log.InfoWithFields("collection completed", map[string]interface{}{
		"total":  summary.Total,
		"cycles": summary.Cycles,
		"path":   summary.Path,
	})
	return nil
}

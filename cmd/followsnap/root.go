package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"followsnap/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFile    string
	noColor    bool
)

// rootCmd collects followers when called with a request file and a target
var rootCmd = &cobra.Command{
	Use:   "followsnap <request_file> <target_count>",
	Short: "Collect follower snapshots and compare them over time",
	Long: `followsnap harvests the complete follower list of an Instagram account
using a request captured from your own logged-in browser session.

Each run walks the follower list page by page, repeating full passes until
the requested number of unique followers has been collected. Progress is
written to a timestamped snapshot after every pass, so an interrupted run
loses nothing. Two snapshots can later be compared with 'followsnap diff'.

Requests are deliberately slow: 4 to 12 seconds between pages and 30 to 60
seconds between passes, to stay clear of rate limiting.`,
	Example: `  # Collect until at least 1500 unique followers are known
  followsnap request.txt 1500

  # Compare two snapshots
  followsnap diff followers_20240101_120000.txt followers_20240201_120000.txt`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          collectArgs,
	RunE:          runCollect,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and exits 1 on any error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Stderr(noColor).PrintError(errorHeadline(err), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.followsnap.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate(`followsnap {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// globalFlags returns the persistent flags that were set explicitly
func globalFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}
	if noColor {
		flags["no-color"] = true
	}
	return flags
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"followsnap/pkg/config"
	errs "followsnap/pkg/errors"
	"followsnap/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage followsnap configuration files.

Configuration is resolved from:
  - Command line flags (highest priority)
  - Configuration file (--config, or ./.followsnap.yaml)
  - Default values (lowest priority)

Credentials are never part of the configuration; they are read from the
captured request file on every run.`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default values",
	Long: `Write a configuration file holding every option at its default value.

The file is created as '.followsnap.yaml' in the current directory unless a
different path is given with --config. An existing file is never replaced.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Delay ranges (min must not exceed max)
  - Positive thresholds, page size and timeout
  - Output directory accessibility`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".followsnap.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return errs.New(errs.ErrorTypeConfig,
			fmt.Sprintf("configuration file already exists: %s (remove it first to regenerate)", configPath))
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return errs.Wrap(errs.ErrorTypePersistence, err, "failed to create configuration file")
	}

	printer := ui.NewPrinter(cmd.OutOrStdout(), noColor)
	printer.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
	fmt.Fprintln(cmd.OutOrStdout(), "1. Adjust pacing or output settings if needed")
	fmt.Fprintf(cmd.OutOrStdout(), "2. Run 'followsnap config validate --config %s'\n", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "3. Capture a request file ('followsnap guide') and run 'followsnap request.txt <count>'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, globalFlags(cmd))
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "failed to load configuration")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeUnknown, err, "failed to format configuration")
	}

	out := cmd.OutOrStdout()
	ui.NewPrinter(out, noColor).PrintHighlight("Current Configuration")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	if configFile != "" {
		fmt.Fprintf(out, "2. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(out, "2. Configuration file: ./.followsnap.yaml if present")
	}
	fmt.Fprintln(out, "3. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	printer := ui.NewPrinter(out, noColor)

	if configFile != "" {
		printer.PrintInfo("Validating configuration", configFile)
	}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "configuration validation failed")
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, "cannot create output directory")
	}

	if cfg.Pacing.PageDelayMin < config.DefaultConfig().Pacing.PageDelayMin {
		printer.PrintWarning("Page delays below the defaults make throttling more likely")
	}

	printer.PrintSuccess("Configuration is valid")
	fmt.Fprintln(out, "\nConfiguration summary:")
	fmt.Fprintf(out, "  Page delay: %s - %s\n", cfg.Pacing.PageDelayMin, cfg.Pacing.PageDelayMax)
	fmt.Fprintf(out, "  Cycle delay: %s - %s\n", cfg.Pacing.CycleDelayMin, cfg.Pacing.CycleDelayMax)
	fmt.Fprintf(out, "  Empty cycle threshold: %d\n", cfg.Collector.EmptyCycleThreshold)
	fmt.Fprintf(out, "  Output directory: %s\n", cfg.Output.Directory)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}

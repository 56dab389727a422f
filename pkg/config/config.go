package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a collection run. Credentials never live here;
// they come from the captured request file.
type Config struct {
	// Delay ranges between pages and between cycles
	Pacing PacingConfig `yaml:"pacing" json:"pacing"`

	// Cycle and accumulation behaviour
	Collector CollectorConfig `yaml:"collector" json:"collector"`

	// HTTP transport settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Metrics endpoint
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// PacingConfig holds the randomized delay ranges
type PacingConfig struct {
	PageDelayMin  time.Duration `yaml:"page_delay_min" json:"page_delay_min"`
	PageDelayMax  time.Duration `yaml:"page_delay_max" json:"page_delay_max"`
	CycleDelayMin time.Duration `yaml:"cycle_delay_min" json:"cycle_delay_min"`
	CycleDelayMax time.Duration `yaml:"cycle_delay_max" json:"cycle_delay_max"`
}

// CollectorConfig holds accumulation settings
type CollectorConfig struct {
	EmptyCycleThreshold int `yaml:"empty_cycle_threshold" json:"empty_cycle_threshold"`
	PageSize            int `yaml:"page_size" json:"page_size"`
}

// HTTPConfig holds transport configuration
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// OutputConfig holds snapshot output configuration
type OutputConfig struct {
	Directory  string `yaml:"directory" json:"directory"`
	FilePrefix string `yaml:"file_prefix" json:"file_prefix"`
	DiffReport string `yaml:"diff_report" json:"diff_report"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	File    string `yaml:"file" json:"file"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// MetricsConfig holds the optional Prometheus endpoint
type MetricsConfig struct {
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}

// DefaultConfig returns a Config instance with the empirically tuned defaults
func DefaultConfig() *Config {
	return &Config{
		Pacing: PacingConfig{
			PageDelayMin:  4 * time.Second,
			PageDelayMax:  12 * time.Second,
			CycleDelayMin: 30 * time.Second,
			CycleDelayMax: 60 * time.Second,
		},
		Collector: CollectorConfig{
			EmptyCycleThreshold: 5,
			PageSize:            25,
		},
		HTTP: HTTPConfig{
			Timeout:           10 * time.Second,
			RequestsPerMinute: 0, // 0 means no ceiling
		},
		Output: OutputConfig{
			Directory:  ".",
			FilePrefix: "followers",
			DiffReport: "difference.txt",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file. An empty path is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches the working directory for a settings file
func (c *Config) findConfigFile() string {
	locations := []string{
		".followsnap.yaml",
		".followsnap.yml",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Pacing.PageDelayMin < 0 || c.Pacing.CycleDelayMin < 0 {
		errs = append(errs, errors.New("delays cannot be negative"))
	}
	if c.Pacing.PageDelayMax < c.Pacing.PageDelayMin {
		errs = append(errs, errors.New("page_delay_max must not be less than page_delay_min"))
	}
	if c.Pacing.CycleDelayMax < c.Pacing.CycleDelayMin {
		errs = append(errs, errors.New("cycle_delay_max must not be less than cycle_delay_min"))
	}

	if c.Collector.EmptyCycleThreshold <= 0 {
		errs = append(errs, errors.New("empty cycle threshold must be positive"))
	}
	if c.Collector.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.HTTP.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.FilePrefix == "" {
		errs = append(errs, errors.New("output file prefix is required"))
	}
	if c.Output.DiffReport == "" {
		errs = append(errs, errors.New("diff report file name is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["page-delay-min"].(time.Duration); ok {
		c.Pacing.PageDelayMin = v
	}
	if v, ok := flags["page-delay-max"].(time.Duration); ok {
		c.Pacing.PageDelayMax = v
	}
	if v, ok := flags["cycle-delay-min"].(time.Duration); ok {
		c.Pacing.CycleDelayMin = v
	}
	if v, ok := flags["cycle-delay-max"].(time.Duration); ok {
		c.Pacing.CycleDelayMax = v
	}
	if v, ok := flags["empty-cycle-threshold"].(int); ok && v > 0 {
		c.Collector.EmptyCycleThreshold = v
	}
	if v, ok := flags["timeout"].(time.Duration); ok && v > 0 {
		c.HTTP.Timeout = v
	}
	if v, ok := flags["requests-per-minute"].(int); ok && v >= 0 {
		c.HTTP.RequestsPerMinute = v
	}
	if v, ok := flags["output-dir"].(string); ok && v != "" {
		c.Output.Directory = v
	}
	if v, ok := flags["diff-report"].(string); ok && v != "" {
		c.Output.DiffReport = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := flags["log-file"].(string); ok && v != "" {
		c.Logging.File = v
	}
	if v, ok := flags["no-color"].(bool); ok && v {
		c.Logging.NoColor = true
	}
	if v, ok := flags["metrics-addr"].(string); ok && v != "" {
		c.Metrics.ListenAddress = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

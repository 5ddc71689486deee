package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/gerunddev/orgco/internal/convert"
	"github.com/gerunddev/orgco/internal/highlight"
	"gopkg.in/yaml.v3"
)

// Config represents the orgco configuration
type Config struct {
	Format          string        `yaml:"format"`
	Highlight       bool          `yaml:"highlight"`
	HighlightStyle  string        `yaml:"highlight_style,omitempty"`
	Standalone      bool          `yaml:"standalone"`
	TOC             bool          `yaml:"toc"`
	Sanitize        bool          `yaml:"sanitize"`
	OutDir          string        `yaml:"out_dir,omitempty"` // empty writes next to the source
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
	Workers         int           `yaml:"workers"`
	Interval        time.Duration `yaml:"interval"`
	ExcludePatterns []string      `yaml:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Format:          "html",
		HighlightStyle:  highlight.DefaultStyle,
		Sanitize:        true,
		LogFile:         filepath.Join(os.TempDir(), "orgco.log"),
		LogLevel:        "info",
		Workers:         4,
		Interval:        5 * time.Second,
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "orgco", "config.yaml")
	}
	return filepath.Join(home, ".config", "orgco", "config.yaml")
}

// StateFilePath returns the path to the batch state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "orgco", "state.json")
}

// Load reads the config file. Keys missing from the file keep their
// default values.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to ConfigPath
func (c *Config) Save() error {
	configPath := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := convert.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.Highlight && c.HighlightStyle != "" && !highlight.KnownStyle(c.HighlightStyle) {
		return fmt.Errorf("unknown highlight_style '%s'", c.HighlightStyle)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.OutDir, err = expandPath(c.OutDir)
	if err != nil {
		return fmt.Errorf("failed to expand out_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// OutputFormat returns the configured output format
func (c *Config) OutputFormat() (convert.Format, error) {
	return convert.ParseFormat(c.Format)
}

// Level returns the configured log level, defaulting to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// RenderOptions builds the renderer options described by the config
func (c *Config) RenderOptions() convert.Options {
	opts := convert.Options{
		Standalone: c.Standalone,
		TOC:        c.TOC,
		Sanitize:   c.Sanitize,
	}
	if c.Highlight {
		opts.Highlighter = highlight.New(c.HighlightStyle)
	}
	return opts
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/logger"
	"github.com/gerunddev/orgco/internal/styles"
)

// flags holds the parsed command line of a command
type flags struct {
	positional []string
	values     map[string]string
	switches   map[string]bool
}

// parseFlags splits args into positional arguments, --name value pairs for
// the names in valued, and boolean --switches
func parseFlags(args []string, valued ...string) (flags, error) {
	f := flags{
		values:   make(map[string]string),
		switches: make(map[string]bool),
	}
	takesValue := make(map[string]bool, len(valued))
	for _, name := range valued {
		takesValue[name] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			f.positional = append(f.positional, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !takesValue[name] {
			f.switches[name] = true
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return f, fmt.Errorf("flag --%s needs a value", name)
			}
			i++
			value = args[i]
		}
		f.values[name] = value
	}
	return f, nil
}

// applyTo overrides the config with the conversion flags given on the
// command line and validates the result
func (f flags) applyTo(cfg *config.Config) error {
	if v, ok := f.values["to"]; ok {
		cfg.Format = v
	}
	if v, ok := f.values["style"]; ok {
		cfg.HighlightStyle = v
		cfg.Highlight = true
	}
	if v, ok := f.values["out-dir"]; ok {
		cfg.OutDir = v
	}
	if v, ok := f.values["workers"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid workers '%s': %w", v, err)
		}
		cfg.Workers = n
	}
	if v, ok := f.values["interval"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid interval '%s': %w", v, err)
		}
		cfg.Interval = d
	}
	if f.switches["highlight"] {
		cfg.Highlight = true
	}
	if f.switches["standalone"] {
		cfg.Standalone = true
	}
	if f.switches["toc"] {
		cfg.TOC = true
	}
	if f.switches["no-sanitize"] {
		cfg.Sanitize = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.ExpandPaths()
}

// loadConfig loads the config file and applies the flags to it
func loadConfig(f flags) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}
	if err := f.applyTo(cfg); err != nil {
		fail("Invalid options", err)
	}
	return cfg
}

// openLog opens the configured log file, falling back to a discarding
// logger when it cannot be opened
func openLog(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile == "" {
		return logger.Discard(), func() {}
	}
	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, cfg.Level())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.WarningStyle.Render("⚠ Cannot open log file: "+err.Error()))
		return logger.Discard(), func() {}
	}
	return l, cleanup
}

// fail prints an error and exits
func fail(msg string, err error) {
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg))
	os.Exit(1)
}

// needArgs exits with usage when fewer than n positional arguments are given
func needArgs(f flags, n int, usage string) {
	if len(f.positional) < n {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Missing arguments"))
		fmt.Fprintln(os.Stderr, styles.DimStyle.Render("  Usage: orgco "+usage))
		os.Exit(1)
	}
}

// ParseLogFile reads the last N lines from the log file and extracts the
// time and count of the most recent completed conversion
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastRun time.Time
	converted := 0

	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "conversion completed") {
			// Format: 2025-11-27 14:11:57 INFO conversion completed converted=3 ...
			if len(line) > 19 {
				if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
					lastRun = t
				}
			}

			if idx := strings.Index(line, "converted="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "converted=%d", &converted) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastRun, converted
}

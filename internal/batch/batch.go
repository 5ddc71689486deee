// Package batch converts every org file below a directory, skipping files
// that have not changed since their last conversion
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/convert"
	"github.com/gerunddev/orgco/internal/logger"
	"github.com/gerunddev/orgco/internal/parser"
	"github.com/gerunddev/orgco/internal/source"
	"github.com/gerunddev/orgco/internal/state"
	"golang.org/x/sync/errgroup"
)

// SourceExt is the extension of the files a batch picks up
const SourceExt = ".org"

// Converter runs batch conversions with one configuration
type Converter struct {
	config   *config.Config
	state    *state.State
	log      *logger.Logger
	format   convert.Format
	opts     convert.Options
	settings string
}

// NewConverter creates a converter for cfg. Conversions are recorded in st.
func NewConverter(cfg *config.Config, st *state.State) (*Converter, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	return &Converter{
		config:   cfg,
		state:    st,
		log:      logger.Discard(),
		format:   format,
		opts:     cfg.RenderOptions(),
		settings: fingerprint(cfg),
	}, nil
}

// SetLogger sets the logger used by the converter
func (c *Converter) SetLogger(l *logger.Logger) {
	c.log = l
}

// Result represents the result of a batch run
type Result struct {
	mu        sync.Mutex
	Converted []string
	Skipped   []string
	Errors    []error
	Lines     int
	StartTime time.Time
	EndTime   time.Time
}

func (r *Result) converted(path string, lines int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Converted = append(r.Converted, path)
	r.Lines += lines
}

func (r *Result) skipped(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped = append(r.Skipped, path)
}

func (r *Result) failed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

// Duration returns how long the run took
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// String returns a human-readable summary of the batch result
func (r *Result) String() string {
	return fmt.Sprintf(
		"Batch complete: %d files converted, %d unchanged, %d errors (took %v)",
		len(r.Converted),
		len(r.Skipped),
		len(r.Errors),
		r.Duration().Round(time.Millisecond),
	)
}

// Run converts the org files below dir. A failing file is recorded in the
// result and does not stop the others; only cancellation of ctx or an
// unreadable directory makes Run return an error.
func (c *Converter) Run(ctx context.Context, dir string) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	files, err := ScanDirectory(dir, SourceExt, c.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	c.log.ConversionStarted(dir, c.format.String(), c.config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			output := OutputPath(file, dir, c.config.OutDir, c.format)
			changed, err := c.state.HasChanged(file, output, c.settings)
			if err != nil {
				c.log.StateError("check", err)
				changed = true
			}
			if !changed {
				c.log.Skipped(file, "unchanged")
				result.skipped(file)
				return nil
			}

			lines, err := c.ConvertFile(file, output)
			if err != nil {
				c.log.ConversionError(file, output, err)
				result.failed(err)
				return nil
			}
			if err := c.state.Update(file, output, c.settings); err != nil {
				c.log.StateError("update", err)
			}
			c.log.FileConverted(file, output, lines)
			result.converted(file, lines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, removed := range c.state.Forget(files) {
		c.log.Skipped(removed, "source removed")
	}

	sort.Strings(result.Converted)
	sort.Strings(result.Skipped)
	result.EndTime = time.Now()
	c.log.BatchCompleted(len(result.Converted), len(result.Skipped), len(result.Errors), result.Duration())
	return result, nil
}

// ConvertFile converts the org file at src and writes the result to dest.
// It returns the number of lines written.
func (c *Converter) ConvertFile(src, dest string) (int, error) {
	text, err := Render(src, c.format, c.opts)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, []byte(text), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return strings.Count(text, "\n"), nil
}

// Render reads the org file at src and renders it
func Render(src string, format convert.Format, opts convert.Options) (string, error) {
	lines, err := source.ReadFile(src)
	if err != nil {
		return "", err
	}
	text, err := convert.RenderString(parser.Parse(lines), format, opts)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", src, err)
	}
	return text, nil
}

// OutputPath returns where the conversion of src goes. Without an output
// directory the result sits next to its source; otherwise the layout below
// root is mirrored into outDir.
func OutputPath(src, root, outDir string, format convert.Format) string {
	name := strings.TrimSuffix(src, filepath.Ext(src)) + format.Ext()
	if outDir == "" {
		return name
	}
	rel, err := filepath.Rel(root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}

// ScanDirectory returns the files below dir with the given extension, sorted.
// Hidden directories are skipped, as are files whose name or path relative
// to dir matches one of the exclude patterns.
func ScanDirectory(dir string, ext string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ext || excluded(dir, path, excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// fingerprint describes every setting that changes the output of a
// conversion
func fingerprint(cfg *config.Config) string {
	return fmt.Sprintf("format=%s standalone=%t toc=%t sanitize=%t highlight=%t style=%s",
		cfg.Format, cfg.Standalone, cfg.TOC, cfg.Sanitize, cfg.Highlight, cfg.HighlightStyle)
}

// Package diff compares the rendering of an org file with an expected
// output file
package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/orgco/internal/batch"
	"github.com/gerunddev/orgco/internal/convert"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Report is the outcome of a check
type Report struct {
	Source   string
	Expected string
	Format   convert.Format
	Unified  string // empty when the outputs match
}

// Equal reports whether the rendering matched the expected output
func (r *Report) Equal() bool {
	return r.Unified == ""
}

// Check renders the org file src in the format implied by the extension of
// expectedPath and compares the result with that file
func Check(src, expectedPath string, opts convert.Options) (*Report, error) {
	format, err := convert.ParseFormat(strings.TrimPrefix(filepath.Ext(expectedPath), "."))
	if err != nil {
		return nil, fmt.Errorf("cannot tell the format of %s: %w", expectedPath, err)
	}

	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read expected output: %w", err)
	}

	got, err := batch.Render(src, format, opts)
	if err != nil {
		return nil, err
	}

	return &Report{
		Source:   src,
		Expected: expectedPath,
		Format:   format,
		Unified:  Unified(filepath.Base(expectedPath), filepath.Base(src), string(expected), got),
	}, nil
}

// Unified returns a unified diff turning before into after, or "" when they
// are the same
func Unified(beforeName, afterName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(beforeName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(beforeName, afterName, before, edits))
}

// Pretty renders a unified diff for the terminal. It falls back to the
// plain fenced diff when glamour cannot render it.
func Pretty(unified string, width int) string {
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}

	return rendered
}

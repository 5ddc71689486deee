package commands

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/orgco/internal/batch"
	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/convert"
	"github.com/gerunddev/orgco/internal/parser"
	"github.com/gerunddev/orgco/internal/source"
	"github.com/gerunddev/orgco/internal/state"
	"github.com/gerunddev/orgco/internal/tui"
)

// Preview opens an interactive viewer of the output of an org file, or of
// every org file below a directory
func Preview(args []string) {
	f, err := parseFlags(args, "to", "style")
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "preview FILE|DIR [--to html|rst]")

	cfg := loadConfig(f)
	format, err := cfg.OutputFormat()
	if err != nil {
		fail("Invalid format", err)
	}
	st := loadState(false)

	files, err := previewFiles(f.positional[0], cfg, st)
	if err != nil {
		fail("Cannot list org files", err)
	}

	opts := cfg.RenderOptions()
	render := func(path string, format convert.Format) (string, error) {
		return batch.Render(path, format, opts)
	}

	p := tea.NewProgram(tui.InitPreviewModel(files, format, render), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}
}

// previewFiles lists the org files at target with their heading count and
// batch status
func previewFiles(target string, cfg *config.Config, st *state.State) ([]tui.PreviewFile, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(target)
	paths := []string{target}
	if info.IsDir() {
		root = target
		paths, err = batch.ScanDirectory(target, batch.SourceExt, cfg.ExcludePatterns)
		if err != nil {
			return nil, err
		}
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}

	files := make([]tui.PreviewFile, 0, len(paths))
	for _, path := range paths {
		name, err := filepath.Rel(root, path)
		if err != nil {
			name = path
		}
		files = append(files, tui.PreviewFile{
			Path:    path,
			Name:    name,
			Headers: countHeaders(path),
			Status:  fileStatus(st, path, batch.OutputPath(path, root, cfg.OutDir, format)),
			MTime:   st.GetMTime(path),
		})
	}
	return files, nil
}

func countHeaders(path string) int {
	lines, err := source.ReadFile(path)
	if err != nil {
		return 0
	}
	n := 0
	for _, thing := range parser.Parse(lines).Things {
		if _, ok := thing.(*parser.Header); ok {
			n++
		}
	}
	return n
}

func fileStatus(st *state.State, path, output string) string {
	fileState, ok := st.Get(path)
	if !ok {
		return "new"
	}
	hash, err := state.ComputeHash(path)
	if err != nil || hash != fileState.Hash || fileState.Output != output {
		return "changed"
	}
	return "converted"
}

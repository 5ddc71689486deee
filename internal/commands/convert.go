package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgco/internal/batch"
	"github.com/gerunddev/orgco/internal/styles"
)

// Convert renders a single org file to stdout or to --out
func Convert(args []string) {
	f, err := parseFlags(args, "to", "out", "style")
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "convert FILE [--to html|rst] [--out FILE] [--highlight] [--standalone] [--toc]")

	cfg := loadConfig(f)
	format, err := cfg.OutputFormat()
	if err != nil {
		fail("Invalid format", err)
	}

	src := f.positional[0]
	text, err := batch.Render(src, format, cfg.RenderOptions())
	if err != nil {
		fail("Conversion failed", err)
	}

	out, ok := f.values["out"]
	if !ok || out == "-" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		fail("Failed to write output", err)
	}
	fmt.Fprintln(os.Stderr, styles.SuccessStyle.Render(fmt.Sprintf("✓ %s → %s", src, out)))
}

package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgco/internal/diff"
	"github.com/gerunddev/orgco/internal/styles"
)

// Check renders an org file and compares it with an expected output file.
// The format comes from the extension of the expected file.
func Check(args []string) {
	f, err := parseFlags(args, "style")
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 2, "check FILE EXPECTED.{html,rst} [--plain]")

	cfg := loadConfig(f)
	report, err := diff.Check(f.positional[0], f.positional[1], cfg.RenderOptions())
	if err != nil {
		fail("Check failed", err)
	}

	if report.Equal() {
		fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s matches %s", report.Source, report.Expected)))
		return
	}

	fmt.Println(styles.ErrorStyle.Render(fmt.Sprintf("✗ %s differs from %s", report.Source, report.Expected)))
	fmt.Println()
	if f.switches["plain"] {
		fmt.Print(report.Unified)
	} else {
		fmt.Print(diff.Pretty(report.Unified, 120))
	}
	os.Exit(1)
}

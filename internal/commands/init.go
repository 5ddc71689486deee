package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/styles"
)

// Init writes a default config file unless one exists or --force is given
func Init(args []string) {
	f, err := parseFlags(args)
	if err != nil {
		fail("Invalid options", err)
	}

	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil && !f.switches["force"] {
		fmt.Println(styles.DimStyle.Render("Config already exists: " + path))
		return
	}

	if err := config.DefaultConfig().Save(); err != nil {
		fail("Failed to write config", err)
	}
	fmt.Println(styles.SuccessStyle.Render("✓ Wrote " + path))
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/orgco/internal/batch"
	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/state"
	"github.com/gerunddev/orgco/internal/styles"
	"github.com/gerunddev/orgco/internal/tui"
)

// Batch converts every org file below a directory
func Batch(args []string) {
	f, err := parseFlags(args, "to", "out-dir", "workers", "style")
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "batch DIR [--to html|rst] [--out-dir DIR] [--workers N] [--force]")

	dir := f.positional[0]
	cfg := loadConfig(f)

	fmt.Println(styles.TitleStyle.Render("orgco batch"))
	fmt.Println()

	st := loadState(f.switches["force"])
	conv, err := batch.NewConverter(cfg, st)
	if err != nil {
		fail("Invalid configuration", err)
	}
	log, cleanup := openLog(cfg)
	defer cleanup()
	conv.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(tui.InitBatchModel(dir), tea.WithInput(os.Stdin))

	go func() {
		result, err := conv.Run(ctx, dir)
		p.Send(tui.BatchMsg{Result: result, Err: err})
	}()

	model, err := p.Run()
	stop()
	if err != nil {
		fail("Error", err)
	}

	if err := st.Save(config.StateFilePath()); err != nil {
		fail("Error saving state", err)
	}

	if m, ok := model.(interface{ Failed() bool }); ok && m.Failed() {
		os.Exit(1)
	}
}

// loadState loads the batch state, or starts from scratch when fresh is set
func loadState(fresh bool) *state.State {
	if fresh {
		return state.NewState()
	}
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state", err)
	}
	return st
}

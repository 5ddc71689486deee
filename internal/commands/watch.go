package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/orgco/internal/batch"
	"github.com/gerunddev/orgco/internal/config"
	"github.com/gerunddev/orgco/internal/tui"
)

// Watch converts a directory on a fixed interval and shows a dashboard
// until the user quits
func Watch(args []string) {
	f, err := parseFlags(args, "to", "out-dir", "workers", "interval", "style")
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "watch DIR [--interval 5s] [--to html|rst] [--out-dir DIR]")

	dir := f.positional[0]
	cfg := loadConfig(f)
	st := loadState(f.switches["force"])

	conv, err := batch.NewConverter(cfg, st)
	if err != nil {
		fail("Invalid configuration", err)
	}
	log, cleanup := openLog(cfg)
	defer cleanup()
	conv.SetLogger(log)
	log.ConfigLoaded(cfg.Format, cfg.Workers, cfg.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(tui.InitWatchModel(), tea.WithInput(os.Stdin))

	var mu sync.Mutex
	data := &tui.WatchData{
		Dir:       dir,
		Format:    cfg.Format,
		Interval:  cfg.Interval,
		StartTime: time.Now(),
	}

	// send hands the dashboard a copy so the view never races the watcher
	send := func() {
		mu.Lock()
		snapshot := *data
		snapshot.Errors = append([]string(nil), data.Errors...)
		mu.Unlock()
		snapshot.LogLines, _, _ = ParseLogFile(cfg.LogFile, 10)
		p.Send(tui.WatchMsg{Data: &snapshot})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conv.Watch(ctx, dir, cfg.Interval, func(result *batch.Result, err error) { //nolint:errcheck // Watch only returns on cancel
			mu.Lock()
			data.Runs++
			data.LastRun = time.Now()
			data.Errors = nil
			if err != nil {
				data.Errors = append(data.Errors, err.Error())
			} else {
				data.Converted += len(result.Converted)
				data.Skipped = len(result.Skipped)
				for _, e := range result.Errors {
					data.Errors = append(data.Errors, e.Error())
				}
			}
			mu.Unlock()

			if err := st.Save(config.StateFilePath()); err != nil {
				log.StateError("save", err)
			}
			send()
		})
	}()

	go func() {
		send()
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		stop()
		<-done
		fail("Error", err)
	}

	stop()
	<-done
	if err := st.Save(config.StateFilePath()); err != nil {
		fail("Error saving state", err)
	}
	log.Info("watch shutdown complete")
}

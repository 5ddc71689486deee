package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// WatchData holds the state of a running watch
type WatchData struct {
	Dir       string
	Format    string
	Interval  time.Duration
	StartTime time.Time
	LastRun   time.Time
	Runs      int
	Converted int
	Skipped   int
	Errors    []string
	LogLines  []string
}

// WatchMsg is sent when fresh watch data is ready
type WatchMsg struct {
	Data *WatchData
	Err  error
}

type watchModel struct {
	data  *WatchData
	err   error
	ready bool
}

// InitWatchModel creates a new watch dashboard model
func InitWatchModel() watchModel {
	return watchModel{}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case WatchMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("orgco watch"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	b.WriteString(labelStyle.Render("Watching"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Directory: %s\n", valueStyle.Render(m.data.Dir)))
	b.WriteString(fmt.Sprintf("  Format:    %s\n", valueStyle.Render(m.data.Format)))
	b.WriteString(fmt.Sprintf("  Interval:  %s\n", valueStyle.Render(m.data.Interval.String())))
	b.WriteString(fmt.Sprintf("  Started:   %s\n", valueStyle.Render(humanize.Time(m.data.StartTime))))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Conversions"))
	b.WriteString("\n")
	if m.data.Runs > 0 {
		b.WriteString(fmt.Sprintf("  Last run:  %s\n", valueStyle.Render(humanize.Time(m.data.LastRun))))
		b.WriteString(fmt.Sprintf("  Runs:      %s\n", valueStyle.Render(humanize.Comma(int64(m.data.Runs)))))
		b.WriteString(fmt.Sprintf("  Converted: %s\n", successStyle.Render(humanize.Comma(int64(m.data.Converted)))))
		b.WriteString(fmt.Sprintf("  Unchanged: %s\n", valueStyle.Render(humanize.Comma(int64(m.data.Skipped)))))
		if len(m.data.Errors) > 0 {
			b.WriteString(fmt.Sprintf("  Errors:    %s\n", errorStyle.Render(fmt.Sprintf("%d", len(m.data.Errors)))))
			for _, e := range m.data.Errors {
				b.WriteString("    " + errorStyle.Render("✗ "+e) + "\n")
			}
		}
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", helpStyle.Render("No run completed yet")))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(helpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("q quit"))
	b.WriteString("\n")

	return b.String()
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gerunddev/orgco/internal/batch"
)

// BatchMsg is sent when a batch run completes
type BatchMsg struct {
	Result *batch.Result
	Err    error
}

// batchModel shows a spinner while a batch runs and a summary afterwards
type batchModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *batch.Result
	err      error
}

// InitBatchModel creates a new batch progress model
func InitBatchModel(dir string) batchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return batchModel{
		spinner: s,
		status:  fmt.Sprintf("Converting org files in %s...", dir),
	}
}

func (m batchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BatchMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m batchModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}
	if m.err != nil {
		return errorStyle.Render("✗ Batch failed: "+m.err.Error()) + "\n"
	}
	return Summary(m.result)
}

// Failed reports whether the run failed or left files unconverted
func (m batchModel) Failed() bool {
	if !m.complete {
		return true
	}
	return m.err != nil || len(m.result.Errors) > 0
}

// Summary formats a batch result for the terminal
func Summary(r *batch.Result) string {
	took := helpStyle.Render(fmt.Sprintf("Completed in %v", r.Duration().Round(time.Millisecond)))

	if len(r.Converted) == 0 && len(r.Errors) == 0 {
		return successStyle.Render(fmt.Sprintf("✓ Nothing to convert (%s unchanged)", humanize.Comma(int64(len(r.Skipped))))) + "\n" + took + "\n"
	}

	msg := successStyle.Render(fmt.Sprintf("✓ Converted %s %s (%s lines)",
		humanize.Comma(int64(len(r.Converted))),
		plural(len(r.Converted), "file", "files"),
		humanize.Comma(int64(r.Lines))))
	if len(r.Skipped) > 0 {
		msg += ", " + helpStyle.Render(fmt.Sprintf("%s unchanged", humanize.Comma(int64(len(r.Skipped)))))
	}
	if len(r.Errors) > 0 {
		msg += ", " + errorStyle.Render(fmt.Sprintf("%d %s", len(r.Errors), plural(len(r.Errors), "error", "errors")))
		for _, err := range r.Errors {
			msg += "\n  " + errorStyle.Render("✗ "+err.Error())
		}
	}
	return msg + "\n" + took + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

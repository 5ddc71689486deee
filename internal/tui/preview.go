package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gerunddev/orgco/internal/convert"
	"github.com/gerunddev/orgco/internal/styles"
)

// PreviewFile is an org file listed in the preview browser
type PreviewFile struct {
	Path    string
	Name    string // path shown in the table
	Headers int
	Status  string    // "converted", "changed" or "new"
	MTime   time.Time // source modification time at the last conversion
}

// RenderFunc renders the org file at path
type RenderFunc func(path string, format convert.Format) (string, error)

// RenderedMsg is sent when the output of a file is ready
type RenderedMsg struct {
	Path    string
	Format  convert.Format
	Content string
	Err     error
}

type previewModel struct {
	table    table.Model
	viewport viewport.Model
	files    []PreviewFile
	selected *PreviewFile
	format   convert.Format
	render   RenderFunc
	showing  bool
	content  string
	err      error
}

// InitPreviewModel creates a browser over files. With a single file the
// preview opens on its rendering right away.
func InitPreviewModel(files []PreviewFile, format convert.Format, render RenderFunc) previewModel {
	columns := []table.Column{
		{Title: "File", Width: 50},
		{Title: "Headers", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Source date", Width: 16},
	}

	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		seen := "-"
		if !f.MTime.IsZero() {
			seen = humanize.Time(f.MTime)
		}
		rows = append(rows, table.Row{f.Name, strconv.Itoa(f.Headers), f.Status, seen})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = viewportStyle

	m := previewModel{
		table:    t,
		viewport: vp,
		files:    files,
		format:   format,
		render:   render,
	}
	if len(files) == 1 {
		m.selected = &m.files[0]
		m.showing = true
	}
	return m
}

func (m previewModel) Init() tea.Cmd {
	if m.showing {
		return m.renderSelected()
	}
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showing {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				if len(m.files) == 1 {
					return m, tea.Quit
				}
				m.showing = false
				return m, nil
			case "t":
				m.format = toggle(m.format)
				return m, m.renderSelected()
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "t":
			m.format = toggle(m.format)
			return m, nil
		case "enter", "p":
			if i := m.table.Cursor(); i >= 0 && i < len(m.files) {
				m.selected = &m.files[i]
				m.showing = true
				m.content = ""
				return m, m.renderSelected()
			}
			return m, nil
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case RenderedMsg:
		if m.selected == nil || msg.Path != m.selected.Path || msg.Format != m.format {
			return m, nil
		}
		m.err = msg.Err
		m.content = msg.Content
		if msg.Err != nil {
			m.content = errorStyle.Render("✗ " + msg.Err.Error())
		}
		m.viewport.SetContent(m.content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("orgco preview"))
	b.WriteString("  ")
	b.WriteString(highlightStyle.Render(strings.ToUpper(m.format.String())))
	b.WriteString("\n\n")

	if m.showing {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Output: %s", m.selected.Name)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • t toggle html/rst • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.files) == 0 {
		b.WriteString(warningStyle.Render("No org files found"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Org files: %d", len(m.files))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter preview • t toggle html/rst • q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderSelected creates a command that renders the selected file
func (m previewModel) renderSelected() tea.Cmd {
	if m.selected == nil || m.render == nil {
		return nil
	}
	path, format, render := m.selected.Path, m.format, m.render
	return func() tea.Msg {
		content, err := render(path, format)
		return RenderedMsg{Path: path, Format: format, Content: content, Err: err}
	}
}

func toggle(f convert.Format) convert.Format {
	if f == convert.HTML {
		return convert.RST
	}
	return convert.HTML
}

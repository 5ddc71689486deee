package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/orgco/internal/styles"
)

var (
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.LabelStyle
	valueStyle     = styles.ValueStyle
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	errorStyle     = styles.ErrorStyle
	warningStyle   = styles.WarningStyle
	highlightStyle = styles.HighlightStyle
	spinnerStyle   = styles.SpinnerStyle
	tableStyle     = styles.BoxStyle

	viewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.Border)).
			Padding(0, 1)
)

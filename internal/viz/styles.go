package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are rebuilt whenever the theme changes.
type styles struct {
	canvas    lipgloss.Style
	panel     lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	nav       lipgloss.Style
	navActive lipgloss.Style
	navCursor lipgloss.Style
	wire      lipgloss.Style
	graph     lipgloss.Style
	help      lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(36),
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Title).MarginBottom(1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		nav:       lipgloss.NewStyle().Foreground(t.Text),
		navActive: lipgloss.NewStyle().Foreground(t.Accent).Underline(true),
		navCursor: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		wire:      lipgloss.NewStyle().Foreground(t.Wire),
		graph:     lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		recording: lipgloss.NewStyle().Bold(true).Foreground(t.Recording).Blink(true),
	}
}

// ProgressBar renders a fixed width bar for a value in [0, 1].
func ProgressBar(v float64, width int) string {
	filled := int(v * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Flat paints a w x h block of a single background color.
func Flat(hex string, w, h int) string {
	row := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", w))
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

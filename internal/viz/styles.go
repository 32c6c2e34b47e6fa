package viz

import "github.com/charmbracelet/lipgloss"

// Styles derived from a theme.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Active lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Graph  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted).Width(26),
		Value:  lipgloss.NewStyle().Foreground(t.Text),
		Active: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Error:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
		Graph: lipgloss.NewStyle().Padding(1, 1),
	}
}

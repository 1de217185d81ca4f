// Package tui renders the admin console in the terminal.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

var (
	Muted       = lipgloss.Color("#6b7280")
	Foreground  = lipgloss.Color("#f2f2f2")
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#16a34a")
	CardBg      = lipgloss.Color("#1f2937")
)

type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Notice    lipgloss.Style
	Info      lipgloss.Style
	Help      lipgloss.Style
	Card      lipgloss.Style
	Selected  lipgloss.Style
	Dragged   lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Overlay   lipgloss.Style
	Label     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(Muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		Notice:    lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(Success),
		Help:      lipgloss.NewStyle().Foreground(Muted),
		Card:      lipgloss.NewStyle().Background(CardBg).Foreground(Foreground),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Dragged:   lipgloss.NewStyle().Faint(true),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Cell:      lipgloss.NewStyle().PaddingRight(1),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Foreground(Muted),
	}
}

// ColumnTitle renders label on the taxonomy color of status.
func ColumnTitle(status, label string, width int, hovered bool) string {
	s := lipgloss.NewStyle().
		Width(width).
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(entity.StatusColor(status)))
	if hovered {
		s = s.Underline(true).Reverse(true)
	}
	return s.Render(clip(label, width))
}

// StatusBadge renders a short colored status label.
func StatusBadge(status string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(entity.StatusColor(status))).
		Render(status)
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

package chat

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var userPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

var (
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))
	editBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	quoteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	affordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	deleteBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	panelSelected  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	panelLocked    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// colorForUser assigns a stable palette color per author label.
func colorForUser(label string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	idx := int(h.Sum32()) % len(userPalette)
	return userPalette[idx]
}

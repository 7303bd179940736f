package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle   = lipgloss.NewStyle().Reverse(true)
	columnStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(34)
	activeColumn    = columnStyle.BorderForeground(lipgloss.Color("12"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

var priorityColors = map[string]lipgloss.Color{
	"LOW":      lipgloss.Color("8"),
	"MEDIUM":   lipgloss.Color("11"),
	"HIGH":     lipgloss.Color("208"),
	"CRITICAL": lipgloss.Color("9"),
}

func priorityBadge(p string) string {
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render("[" + p + "]")
}

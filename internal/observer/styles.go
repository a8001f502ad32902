package observer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AthenaLink/dockronos/internal/container"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	infoColor    = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	urgentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Per-status colors for container listings
	statusColors = map[container.Status]lipgloss.Color{
		container.StatusRunning:    successColor,
		container.StatusCreated:    infoColor,
		container.StatusStopped:    mutedColor,
		container.StatusExited:     mutedColor,
		container.StatusPaused:     warningColor,
		container.StatusRestarting: warningColor,
		container.StatusDead:       errorColor,
		container.StatusRemoved:    mutedColor,
	}
)

// statusStyle returns the render style for a container status.
func statusStyle(status container.Status) lipgloss.Style {
	if color, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(color)
	}
	return mutedStyle
}

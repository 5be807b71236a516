// Package style holds the gallery palette.
package style

import (
	"charm.land/lipgloss/v2"
)

var (
	BorderColor   = lipgloss.Color("240") // Subtle warm grey
	SelectedColor = lipgloss.Color("63")

	BorderStyle = lipgloss.NewStyle().Foreground(BorderColor)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	FooterStyle = lipgloss.NewStyle().Foreground(BorderColor)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1)

	ImageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			MarginBottom(1)
	SelectedImageStyle = ImageStyle.
				BorderForeground(SelectedColor)
)

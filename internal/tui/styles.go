package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors matching the output package scheme
var (
	colorCyan    = lipgloss.Color("6")  // Cyan - routes
	colorYellow  = lipgloss.Color("3")  // Yellow - simulated data
	colorRed     = lipgloss.Color("1")  // Red - errors, fallback
	colorGreen   = lipgloss.Color("2")  // Green - live data
	colorMagenta = lipgloss.Color("5")  // Magenta - direction
	colorWhite   = lipgloss.Color("15") // White - times, text
	colorGray    = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleTime      = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleRoute     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleDirection = lipgloss.NewStyle().Foreground(colorMagenta)
	styleMuted     = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleLive      = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleSimulated = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleFallback  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Selected item in a list
var styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Focused chip cursor in the route bar, reverse-video
var styleChipCursor = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(colorCyan).
	Bold(true)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// routeStyle renders a chip in the route's own display color
func routeStyle(hex string) lipgloss.Style {
	if hex == "" {
		return styleRoute
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderRouteBar renders the route chips next to the data source box.
func (m Model) renderRouteBar() string {
	var chips strings.Builder
	for i, label := range m.chipLabels() {
		color := ""
		if i > 0 {
			color = m.routes[i-1].Color
		}
		focused := m.focus == focusRoutes && m.routeCursor == i
		active := m.activeChip() == i
		chips.WriteString(renderChip(label, color, active, focused))
		if i < len(m.routes) {
			chips.WriteString(" ")
		}
	}

	chipsBorder := stylePanelNormal
	if m.focus == focusRoutes {
		chipsBorder = stylePanelFocused
	}
	chipsBox := chipsBorder.Render(chips.String())

	sourceBox := stylePanelNormal.Render(m.renderSource())

	boxes := lipgloss.JoinHorizontal(lipgloss.Top, chipsBox, sourceBox)

	if !m.lastUpdate.IsZero() {
		remaining := m.pollInterval() - m.now().Sub(m.lastUpdate)
		if remaining < 0 {
			remaining = 0
		}
		updateText := fmt.Sprintf("  Last update:\t%s\t(refresh in %ds)",
			m.lastUpdate.Format("15:04:05"), int(remaining.Seconds()))
		return styleMuted.Render(updateText) + "\n" + boxes
	}

	return boxes
}

// activeChip returns the chip index of the active filter, -1 for a typed route
// that is not in the catalogue.
func (m Model) activeChip() int {
	if m.route == "" {
		return 0
	}
	for i, r := range m.routes {
		if strings.EqualFold(r.ID, m.route) || r.ID == "0"+m.route {
			return i + 1
		}
	}
	return -1
}

// renderSource describes where the current list came from.
func (m Model) renderSource() string {
	switch {
	case m.source == "":
		return styleMuted.Render("waiting for data")
	case m.fallback:
		return styleFallback.Render("FALLBACK") + styleMuted.Render(fmt.Sprintf(" after %d relays", m.attempts))
	case m.simulated:
		return styleSimulated.Render("SIMULATED")
	default:
		return styleLive.Render("LIVE") + styleMuted.Render(" via "+m.source)
	}
}

// renderChip renders a single chip with cursor highlighting.
func renderChip(label, color string, active, focused bool) string {
	if focused {
		if active {
			return styleChipCursor.Render("[" + label + "]")
		}
		return styleChipCursor.Render(" " + label + " ")
	}
	if active {
		return routeStyle(color).Render("[" + label + "]")
	}
	return styleMuted.Render(" " + label + " ")
}

// handleRouteKeys handles key events when the route bar is focused.
func (m Model) handleRouteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.routeCursor > 0 {
			m.routeCursor--
		}
		return m, nil

	case "l", "right":
		if m.routeCursor < len(m.routes) {
			m.routeCursor++
		}
		return m, nil

	case " ", "enter":
		route := ""
		if m.routeCursor > 0 {
			route = m.routes[m.routeCursor-1].ID
		}
		return m.selectRoute(m.routeCursor, route)
	}

	return m, nil
}

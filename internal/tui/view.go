package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Layout: header + route bar + [search bar] + panels + status bar
	header := renderHeader()
	routeBar := m.renderRouteBar()
	statusBar := m.renderStatusBar()

	top := []string{header, routeBar}
	if m.focus == focusSearch {
		top = append(top, m.renderSearchBar())
	}

	used := lipgloss.Height(statusBar)
	for _, s := range top {
		used += lipgloss.Height(s)
	}
	panelHeight := m.height - used
	if panelHeight < 3 {
		panelHeight = 3
	}

	// Panel widths: ~60% list, ~40% detail
	leftWidth := m.width*60/100 - 2 // subtract border
	rightWidth := m.width - leftWidth - 4
	if leftWidth < 20 {
		leftWidth = 20
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderVehicleList(leftWidth, panelHeight-2)
	rightPanel := m.renderVehicleDetail(rightWidth)

	leftBorder := stylePanelNormal
	if m.focus == focusVehicles {
		leftBorder = stylePanelFocused
	}
	leftPanel = leftBorder.
		Width(leftWidth).
		Height(panelHeight - 2).
		Render(leftPanel)

	rightPanel = stylePanelNormal.
		Width(rightWidth).
		Height(panelHeight - 2).
		Render(rightPanel)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	parts := append(top, panels, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the brand line.
func renderHeader() string {
	title := "" +
		" _                        _ _   \n" +
		"| |_ _ __ __ _ _ __  ___(_) |_ \n" +
		"| __| '__/ _` | '_ \\/ __| | __|\n" +
		"| |_| | | (_| | | | \\__ \\ | |_ \n" +
		" \\__|_|  \\__,_|_| |_|___/_|\\__|"

	tagline := styleMuted.Render("  TransLink vehicle tracker")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, styleLogo.Render(title), tagline)
}

// renderSearchBar renders the route input.
func (m Model) renderSearchBar() string {
	label := styleHeader.Render("Route: ")
	content := label + m.searchInput.View()
	if m.inputErr != nil {
		content += "  " + styleError.Render(m.inputErr.Error())
	}
	return stylePanelFocused.Width(m.width - 2).Render(content)
}

// renderVehicleList renders the left vehicle panel.
func (m Model) renderVehicleList(width, height int) string {
	title := "VEHICLES"
	if m.route != "" {
		title += " on " + m.route
	}
	if len(m.vehicles) > 0 {
		title += fmt.Sprintf(" (%d)", len(m.vehicles))
	}
	titleStr := styleHeader.Render(title)
	if m.loading {
		titleStr += " " + m.spinner.View()
	}

	if m.fetchErr != nil {
		return titleStr + "\n" + styleError.Render(" Error: "+m.fetchErr.Error())
	}
	if len(m.vehicles) == 0 {
		if m.loading {
			return titleStr + "\n" + styleLoading.Render(" Fetching vehicles...")
		}
		return titleStr + "\n" + styleMuted.Render(" No vehicles reported")
	}

	var b strings.Builder
	b.WriteString(titleStr)
	b.WriteString("\n")

	maxVisible := height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := visibleRange(m.vehicleCursor, len(m.vehicles), maxVisible)

	for i := start; i < end; i++ {
		line := m.renderVehicleLine(m.vehicles[i], width, i == m.vehicleCursor && m.focus == focusVehicles)
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderVehicleLine renders a single vehicle entry.
func (m Model) renderVehicleLine(v models.VehicleRecord, width int, selected bool) string {
	routeStr := fmt.Sprintf("%-7s", truncate(v.RouteID, 7))
	vehicleStr := fmt.Sprintf("%-12s", truncate(v.VehicleID, 12))

	dest := v.Destination
	fixedWidth := 7 + 1 + 12 + 1 + 1 + 2 // route+sp+vehicle+sp+dir+sp
	maxDest := width - fixedWidth - 2
	dest = truncate(dest, maxDest)

	entry := fmt.Sprintf("%s %s %s  %s",
		m.styleForRoute(v.RouteID).Render(routeStr),
		vehicleStr,
		styleDirection.Render(v.Direction.Short()),
		dest,
	)

	if selected {
		return styleSelected.Render(">") + entry
	}
	return " " + entry
}

// renderVehicleDetail renders the selected vehicle.
func (m Model) renderVehicleDetail(width int) string {
	title := styleHeader.Render("DETAILS")
	if len(m.vehicles) == 0 || m.vehicleCursor >= len(m.vehicles) {
		return title + "\n" + styleMuted.Render(" Select a vehicle")
	}

	v := m.vehicles[m.vehicleCursor]
	direction := string(v.Direction)
	if direction == "" {
		direction = "unknown"
	}

	rows := []struct{ label, value string }{
		{"Vehicle", v.VehicleID},
		{"Route", v.RouteID},
		{"Direction", direction},
		{"Destination", v.Destination},
		{"Pattern", v.Pattern},
		{"Position", fmt.Sprintf("%.5f, %.5f", v.Latitude, v.Longitude)},
		{"Recorded", v.RecordedAt},
	}
	if v.MapReference.Href != "" {
		rows = append(rows, struct{ label, value string }{"Map", v.MapReference.Href})
	}

	var b strings.Builder
	b.WriteString(title)
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(styleMuted.Render(fmt.Sprintf(" %-12s", r.label)))
		b.WriteString(truncate(r.value, width-14))
	}
	return b.String()
}

// styleForRoute returns the display style for a route id
func (m Model) styleForRoute(id string) lipgloss.Style {
	for _, r := range m.routes {
		if r.ID == id {
			return routeStyle(r.Color)
		}
	}
	return styleRoute
}

// renderStatusBar renders context-aware keyboard hints at the bottom.
func (m Model) renderStatusBar() string {
	var hints string
	switch m.focus {
	case focusRoutes:
		hints = "h/l:move  Enter:select  a:all  /:route  Tab:vehicles  r:refresh  s:simulate  q:quit"
	case focusVehicles:
		hints = "j/k:navigate  Tab:routes  a:all  /:route  r:refresh  s:simulate  q:quit"
	case focusSearch:
		hints = "Enter:apply  Esc:cancel  Ctrl+C:quit"
	}

	mode := "live"
	if m.store.SimulationMode() {
		mode = "simulation"
	}

	return styleStatusBar.Width(m.width).Render(" " + hints + "  [" + mode + "]")
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-1] + "~"
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nefnief-tech/transit-app-test/internal/api"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case vehiclesResultMsg:
		return m.handleVehiclesResult(msg)

	case pollTickMsg:
		// Never start a second chain while one is still running
		if m.loading {
			return m, pollTick(m.pollInterval())
		}
		next, cmd := m.refresh()
		return next, tea.Batch(cmd, pollTick(m.pollInterval()))

	case countdownTickMsg:
		return m, countdownTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh starts a new fetch for the active route. Results of earlier
// fetches still in flight are dropped when they arrive.
func (m Model) refresh() (Model, tea.Cmd) {
	m.fetchSeq++
	m.loading = true
	return m, fetchVehicles(m.client, m.store.Snapshot(), m.route, m.fetchSeq)
}

func (m Model) handleVehiclesResult(msg vehiclesResultMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results
	if msg.seq != m.fetchSeq {
		return m, nil
	}
	m.loading = false
	m.fetchErr = msg.err
	if msg.err != nil || msg.result == nil {
		return m, nil
	}

	selected := ""
	if m.vehicleCursor < len(m.vehicles) {
		selected = m.vehicles[m.vehicleCursor].VehicleID
	}

	m.vehicles = msg.result.Vehicles
	m.source = msg.result.Source
	m.simulated = msg.result.Simulated
	m.fallback = msg.result.Fallback
	m.attempts = msg.result.Attempts
	m.lastUpdate = m.now()

	// Keep the cursor on the same vehicle across refreshes
	m.vehicleCursor = 0
	for i, v := range m.vehicles {
		if v.VehicleID == selected {
			m.vehicleCursor = i
			break
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.focus == focusSearch {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.focus == focusRoutes {
			m.focus = focusVehicles
		} else {
			m.focus = focusRoutes
		}
		return m, nil

	case "/":
		m.focus = focusSearch
		m.inputErr = nil
		m.searchInput.SetValue("")
		cmd := m.searchInput.Focus()
		return m, cmd

	case "r":
		return m.refresh()

	case "s":
		m.store.ToggleSimulation()
		return m.refresh()

	case "a":
		return m.selectRoute(0, "")
	}

	switch m.focus {
	case focusRoutes:
		return m.handleRouteKeys(msg)
	case focusVehicles:
		return m.handleVehicleKeys(msg)
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		route := strings.TrimSpace(m.searchInput.Value())
		if err := api.ValidateRoute(route); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.searchInput.Blur()
		m.focus = focusVehicles

		cursor := 0
		for i, r := range m.routes {
			if strings.EqualFold(r.ID, route) || r.ID == "0"+route {
				cursor = i + 1
				break
			}
		}
		return m.selectRoute(cursor, route)

	case "esc":
		m.searchInput.Blur()
		m.inputErr = nil
		m.focus = focusRoutes
		return m, nil
	}

	// Forward to textinput
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// selectRoute switches the active filter and fetches it
func (m Model) selectRoute(cursor int, route string) (tea.Model, tea.Cmd) {
	m.routeCursor = cursor
	if m.route == route && !m.loading {
		return m, nil
	}
	m.route = route
	m.vehicles = nil
	m.vehicleCursor = 0
	return m.refresh()
}

func (m Model) handleVehicleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.vehicles) == 0 {
		return m, nil
	}

	pageSize := m.height - 12
	if pageSize < 1 {
		pageSize = 10
	}

	switch msg.String() {
	case "j", "down":
		m.vehicleCursor++
	case "k", "up":
		m.vehicleCursor--
	case "pgdown":
		m.vehicleCursor += pageSize
	case "pgup":
		m.vehicleCursor -= pageSize
	case "home":
		m.vehicleCursor = 0
	case "end":
		m.vehicleCursor = len(m.vehicles) - 1
	case "esc":
		m.focus = focusRoutes
	}

	if m.vehicleCursor >= len(m.vehicles) {
		m.vehicleCursor = len(m.vehicles) - 1
	}
	if m.vehicleCursor < 0 {
		m.vehicleCursor = 0
	}

	return m, nil
}

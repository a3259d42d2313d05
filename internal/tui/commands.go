package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nefnief-tech/transit-app-test/internal/config"
)

const (
	defaultPollInterval = 8 * time.Second
	chainTimeout        = time.Minute
)

// pollTick returns a tea.Cmd that sends a tick after the poll interval.
func pollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// countdownTick returns a tea.Cmd that sends a tick every second for countdown display.
func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

// fetchVehicles returns a tea.Cmd that runs one fetch with the given settings snapshot.
func fetchVehicles(client Fetcher, settings config.Settings, route string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chainTimeout)
		defer cancel()

		result, err := client.Fetch(ctx, settings, route)
		return vehiclesResultMsg{
			seq:    seq,
			route:  route,
			result: result,
			err:    err,
		}
	}
}

package tui

import (
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/api"
)

// pollTickMsg is sent every poll interval to refresh the vehicle list.
type pollTickMsg time.Time

// countdownTickMsg is sent every second to update the countdown display.
type countdownTickMsg time.Time

// vehiclesResultMsg carries a fetch result back to the model.
// seq is used for stale-result detection.
type vehiclesResultMsg struct {
	seq    int
	route  string
	result *api.FetchResult
	err    error
}

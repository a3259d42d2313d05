package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nefnief-tech/transit-app-test/internal/api"
	"github.com/Nefnief-tech/transit-app-test/internal/config"
	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

type focusPanel int

const (
	focusRoutes focusPanel = iota
	focusVehicles
	focusSearch
)

// Fetcher is the part of api.Client the board needs
type Fetcher interface {
	Fetch(ctx context.Context, settings config.Settings, route string) (*api.FetchResult, error)
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	client Fetcher
	store  *config.Store
	routes []models.RouteDescriptor
	now    func() time.Time
	width  int
	height int

	focus       focusPanel
	searchInput textinput.Model
	inputErr    error
	spinner     spinner.Model

	// Route chips: index 0 is "All", then one chip per route
	routeCursor int
	route       string

	// Vehicle list
	vehicles      []models.VehicleRecord
	vehicleCursor int
	loading       bool
	fetchErr      error
	fetchSeq      int

	// Where the current list came from
	source     string
	simulated  bool
	fallback   bool
	attempts   int
	lastUpdate time.Time
}

// New creates a new TUI model. The first fetch is issued by Init.
func New(client Fetcher, store *config.Store, routes []models.RouteDescriptor) Model {
	ti := textinput.New()
	ti.Placeholder = "Route number, e.g. 14 or R4"
	ti.CharLimit = 10
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLoading

	return Model{
		client:      client,
		store:       store,
		routes:      routes,
		now:         time.Now,
		focus:       focusRoutes,
		searchInput: ti,
		spinner:     sp,
		loading:     true,
		fetchSeq:    1,
	}
}

// pollInterval returns the configured refresh interval
func (m Model) pollInterval() time.Duration {
	if d := m.store.Snapshot().PollInterval; d > 0 {
		return d
	}
	return defaultPollInterval
}

// Init starts the spinner, the first fetch and the poll timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchVehicles(m.client, m.store.Snapshot(), m.route, m.fetchSeq),
		pollTick(m.pollInterval()),
		countdownTick(),
	)
}

// chipLabels returns the labels of the route chips, "All" first
func (m Model) chipLabels() []string {
	labels := make([]string, 0, len(m.routes)+1)
	labels = append(labels, "All")
	for _, r := range m.routes {
		labels = append(labels, r.ID)
	}
	return labels
}

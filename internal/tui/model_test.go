package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/api"
	"github.com/Nefnief-tech/transit-app-test/internal/config"
	"github.com/Nefnief-tech/transit-app-test/internal/models"
	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

var fixedNow = time.Date(2025, 3, 14, 14, 15, 2, 0, time.UTC)

type fetchCall struct {
	settings config.Settings
	route    string
}

type stubFetcher struct {
	mu     sync.Mutex
	calls  []fetchCall
	result *api.FetchResult
	err    error
}

func (f *stubFetcher) Fetch(ctx context.Context, settings config.Settings, route string) (*api.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{settings: settings, route: route})
	return f.result, f.err
}

func (f *stubFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func testVehicles() []models.VehicleRecord {
	return []models.VehicleRecord{
		{VehicleID: "9412", RouteID: "099", Direction: models.DirectionWest, Destination: "UBC", Latitude: 49.2634, Longitude: -123.1172, RecordedAt: "02:14:33 pm"},
		{VehicleID: "9418", RouteID: "099", Direction: models.DirectionEast, Destination: "COMMERCIAL-BROADWAY STN", Latitude: 49.2648, Longitude: -123.1652, RecordedAt: "02:14:41 pm"},
		{VehicleID: "2201", RouteID: "019", Direction: models.DirectionEast, Destination: "METROTOWN STN", Latitude: 49.2811, Longitude: -123.1023, RecordedAt: "02:15:02 pm"},
	}
}

func newTestModel(f *stubFetcher) Model {
	settings := config.Defaults()
	settings.APIKey = "test-key"
	m := New(f, config.NewStore(settings), models.DefaultRoutes().All())
	m.now = func() time.Time { return fixedNow }
	return m
}

// loaded returns a model that already received one live result
func loaded(t *testing.T, f *stubFetcher) Model {
	t.Helper()
	m := newTestModel(f)
	next, _ := m.Update(vehiclesResultMsg{
		seq:    m.fetchSeq,
		result: &api.FetchResult{Vehicles: testVehicles(), Source: "allorigins-raw", Attempts: 2},
	})
	return next.(Model)
}

func TestNew(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	testutil.AssertTrue(t, m.client != nil)
	testutil.AssertEqual(t, m.focus, focusRoutes)
	testutil.AssertTrue(t, m.loading)
	testutil.AssertEqual(t, m.fetchSeq, 1)
	testutil.AssertEqual(t, m.route, "")
	testutil.AssertEqual(t, m.pollInterval(), 8*time.Second)

	labels := m.chipLabels()
	testutil.AssertLen(t, labels, 6)
	testutil.AssertEqual(t, labels[0], "All")
	testutil.AssertEqual(t, labels[1], "099")
	testutil.AssertEqual(t, labels[5], "Seabus")
}

func TestModel_Init(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	cmd := m.Init()
	testutil.AssertTrue(t, cmd != nil)
}

func TestModel_PollInterval_FromStore(t *testing.T) {
	m := newTestModel(&stubFetcher{})

	settings := m.store.Snapshot()
	settings.PollInterval = 20 * time.Second
	m.store = config.NewStore(settings)

	testutil.AssertEqual(t, m.pollInterval(), 20*time.Second)
}

func TestFetchVehicles_Command(t *testing.T) {
	f := &stubFetcher{result: &api.FetchResult{Vehicles: testVehicles(), Source: "corsproxy"}}
	settings := config.Defaults()
	settings.APIKey = "k"

	msg := fetchVehicles(f, settings, "099", 7)()

	result, ok := msg.(vehiclesResultMsg)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, result.seq, 7)
	testutil.AssertEqual(t, result.route, "099")
	testutil.AssertNil(t, result.err)
	testutil.AssertEqual(t, result.result.Source, "corsproxy")
	testutil.AssertEqual(t, f.lastCall().route, "099")
	testutil.AssertEqual(t, f.lastCall().settings.APIKey, "k")
}

// Package simulation produces a synthetic fleet for when live vehicle data is
// unavailable. Output is a pure function of the timestamp and route filter.
package simulation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

const (
	// DefaultVehiclesPerRoute is used for routes that do not specify a count
	DefaultVehiclesPerRoute = 5

	// Destination marks synthetic vehicles in any UI
	Destination = "Simulation Mode"

	pattern       = "Full"
	fallbackRoute = "099"
	idBase        = 1000
)

// DefaultPeriod is one full forward-and-back cycle at one radian per 15 seconds
var DefaultPeriod = time.Duration(math.Round(2 * math.Pi * float64(15*time.Second)))

// Generator produces deterministic vehicle positions along route paths.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	routes *models.RouteCatalog
	period time.Duration
	now    func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithPeriod sets the oscillation period
func WithPeriod(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.period = d
		}
	}
}

// WithClock sets the time source used by Generate
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator over the given route catalogue
func NewGenerator(routes *models.RouteCatalog, opts ...Option) *Generator {
	g := &Generator{
		routes: routes,
		period: DefaultPeriod,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Period returns the oscillation period
func (g *Generator) Period() time.Duration {
	return g.period
}

// Generate returns the synthetic fleet for the current time
func (g *Generator) Generate(route string) []models.VehicleRecord {
	return g.GenerateAt(g.now(), route)
}

// GenerateAt returns the synthetic fleet at t. An empty route simulates every
// route in the catalogue. Timestamps one period apart yield the same positions.
func (g *Generator) GenerateAt(t time.Time, route string) []models.VehicleRecord {
	route = strings.TrimSpace(route)

	ids := g.routes.IDs()
	if route != "" {
		ids = []string{route}
	}

	fallback, _ := g.routes.Lookup(fallbackRoute)
	base := g.phase(t)
	recordedAt := t.Format("15:04:05")

	vehicles := make([]models.VehicleRecord, 0, len(ids)*DefaultVehiclesPerRoute)
	for _, id := range ids {
		desc, ok := g.routes.Lookup(id)
		if !ok {
			desc = models.RouteDescriptor{ID: id}
		}

		path := desc.Path
		if !desc.HasPath() {
			path = fallback.Path
		}
		if len(path) < 2 {
			continue
		}

		forward := desc.Forward
		if forward == models.DirectionUnknown {
			forward = desc.Direction
		}
		if forward == models.DirectionUnknown {
			forward = fallback.Forward
		}

		n := desc.Vehicles
		if n <= 0 {
			n = DefaultVehiclesPerRoute
		}

		for i := 0; i < n; i++ {
			phase := base + 2*math.Pi*float64(i)/float64(n)
			progress := (math.Sin(phase) + 1) / 2
			lat, lon := interpolate(path, progress)

			dir := forward
			if math.Cos(phase) < 0 {
				dir = forward.Opposite()
			}

			v, err := models.NewVehicleRecord(models.VehicleFields{
				VehicleID:   desc.ID + "-" + strconv.Itoa(idBase+i),
				RouteID:     desc.ID,
				Direction:   string(dir),
				Destination: Destination,
				Pattern:     pattern,
				Latitude:    lat,
				Longitude:   lon,
				RecordedAt:  recordedAt,
			})
			if err != nil {
				continue
			}
			vehicles = append(vehicles, v)
		}
	}

	return vehicles
}

// phase maps t onto [0, 2π) using integer nanoseconds, so the result repeats
// exactly every period.
func (g *Generator) phase(t time.Time) float64 {
	p := int64(g.period)
	rem := t.UnixNano() % p
	if rem < 0 {
		rem += p
	}
	return 2 * math.Pi * float64(rem) / float64(p)
}

// interpolate places progress in [0,1] onto the polyline
func interpolate(path []models.Waypoint, progress float64) (float64, float64) {
	segments := len(path) - 1
	pos := progress * float64(segments)
	idx := int(math.Floor(pos))
	frac := pos - float64(idx)

	if idx >= segments {
		idx = segments - 1
		frac = 1
	}
	if idx < 0 {
		idx = 0
		frac = 0
	}

	start, end := path[idx], path[idx+1]
	lat := start.Lat() + (end.Lat()-start.Lat())*frac
	lon := start.Lon() + (end.Lon()-start.Lon())*frac
	return lat, lon
}

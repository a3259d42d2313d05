package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

func noColorOptions(t *testing.T) TableOptions {
	t.Helper()
	old := color.NoColor
	t.Cleanup(func() { color.NoColor = old })
	color.NoColor = true
	return TableOptions{Colors: NewColors(ColorNever)}
}

func sampleVehicles() []models.VehicleRecord {
	return []models.VehicleRecord{
		{
			VehicleID:    "9412",
			RouteID:      "099",
			Direction:    models.DirectionWest,
			Destination:  "UBC",
			Latitude:     49.2634,
			Longitude:    -123.1172,
			RecordedAt:   "02:14:33 pm",
			MapReference: models.MapReference{Href: "https://nb.translink.ca/geodata/099.kmz"},
		},
		{
			VehicleID:   "Seabus-1000",
			RouteID:     "Seabus",
			Direction:   models.DirectionUnknown,
			Destination: "Simulation Mode",
			Latitude:    49.3,
			Longitude:   -123.1,
			RecordedAt:  "14:15:00",
		},
	}
}

func TestRenderVehicles_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderVehicles(&buf, nil, TableOptions{})
	testutil.AssertEqual(t, buf.String(), "No vehicles found.\n")
}

func TestRenderVehicles(t *testing.T) {
	var buf bytes.Buffer
	RenderVehicles(&buf, sampleVehicles(), noColorOptions(t))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	testutil.AssertLen(t, lines, 2)

	testutil.AssertEqual(t, lines[0], "02:14:33 pm 099     9412          W    49.2634, -123.1172  UBC")
	testutil.AssertContains(t, lines[1], "Seabus  Seabus-1000")
	testutil.AssertContains(t, lines[1], "  ?  ")
	testutil.AssertNotContains(t, buf.String(), "Map:")
}

func TestRenderVehicles_ShowMap(t *testing.T) {
	opts := noColorOptions(t)
	opts.ShowMap = true

	var buf bytes.Buffer
	RenderVehicles(&buf, sampleVehicles(), opts)

	out := buf.String()
	testutil.AssertContains(t, out, "Map: https://nb.translink.ca/geodata/099.kmz")
	testutil.AssertEqual(t, strings.Count(out, "Map:"), 1)
}

func TestRenderVehicles_TruncatesLongFields(t *testing.T) {
	vehicles := []models.VehicleRecord{{
		VehicleID:  "VERY-LONG-VEHICLE-ID",
		RouteID:    "ROUTE12345",
		RecordedAt: "2025-03-14T14:15:00",
	}}

	var buf bytes.Buffer
	RenderVehicles(&buf, vehicles, noColorOptions(t))

	out := buf.String()
	testutil.AssertContains(t, out, "ROUTE12 VERY-LONG-VE ")
	testutil.AssertContains(t, out, "2025-03-14T ")
}

func TestRenderRoutes(t *testing.T) {
	var buf bytes.Buffer
	RenderRoutes(&buf, models.DefaultRoutes().All(), noColorOptions(t))

	out := buf.String()
	testutil.AssertContains(t, out, "Routes:")
	testutil.AssertContains(t, out, "  099     B-Line Commercial-Broadway / UBC")
	testutil.AssertContains(t, out, "Direction: SOUTH  Color: #ef4444")
	testutil.AssertContains(t, out, "Use: transit vehicles Seabus")
	testutil.AssertEqual(t, strings.Count(out, "Use:"), 5)
}

func TestRenderRoutes_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderRoutes(&buf, nil, TableOptions{})
	testutil.AssertEqual(t, buf.String(), "No routes configured.\n")
}

func TestRenderStatus(t *testing.T) {
	at := time.Date(2025, 3, 14, 14, 15, 2, 0, time.UTC)

	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{
			name:   "live",
			status: Status{Source: "allorigins-raw", Count: 12, At: at},
			want:   "LIVE via  allorigins-raw ·  vehicles: 12  14:15:02\n",
		},
		{
			name:   "simulated",
			status: Status{Source: "simulation", Simulated: true, Count: 22, At: at},
			want:   "SIMULATED via  simulation ·  vehicles: 22  14:15:02\n",
		},
		{
			name:   "fallback",
			status: Status{Source: "simulation", Simulated: true, Fallback: true, Count: 5, At: at},
			want:   "FALLBACK via  simulation ·  vehicles: 5  14:15:02\n",
		},
	}

	opts := noColorOptions(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderStatus(&buf, tt.status, opts)
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}

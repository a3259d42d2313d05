package output

import (
	"fmt"
	"io"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors  *Colors
	ShowMap bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// Status summarizes where a vehicle list came from
type Status struct {
	Source    string
	Simulated bool
	Fallback  bool
	Count     int
	At        time.Time
}

// RenderStatus renders a one-line summary of a fetch
func RenderStatus(w io.Writer, s Status, opts TableOptions) {
	c := opts.colors()

	mode := c.Live("LIVE")
	switch {
	case s.Fallback:
		mode = c.Warn("FALLBACK")
	case s.Simulated:
		mode = c.Simulated("SIMULATED")
	}

	_, _ = fmt.Fprintf(w, "%s %s  %s %s  %s %d  %s\n",
		mode,
		c.Muted("via"),
		s.Source,
		c.Muted("·"),
		c.Muted("vehicles:"),
		s.Count,
		c.Time(s.At.Format("15:04:05")),
	)
}

// RenderVehicles renders vehicles as a formatted table
func RenderVehicles(w io.Writer, vehicles []models.VehicleRecord, opts TableOptions) {
	if len(vehicles) == 0 {
		_, _ = fmt.Fprintln(w, "No vehicles found.")
		return
	}

	c := opts.colors()

	for _, v := range vehicles {
		// Route (pad to 7 chars)
		route := truncate(v.RouteID, 7)
		routeStr := fmt.Sprintf("%-7s", route)

		// Vehicle (pad to 12 chars)
		vehicleStr := fmt.Sprintf("%-12s", truncate(v.VehicleID, 12))

		// Recorded time (fixed 11-char width, RTTI uses "02:14:33 pm")
		recorded := fmt.Sprintf("%-11s", truncate(v.RecordedAt, 11))

		coords := fmt.Sprintf("%9.4f,%10.4f", v.Latitude, v.Longitude)

		_, _ = fmt.Fprintf(w, "%s %s %s  %s  %s  %s\n",
			c.Time(recorded),
			c.Route(routeStr),
			c.Vehicle(vehicleStr),
			c.Direction(v.Direction.Short()),
			c.Coord(coords),
			c.Dest(v.Destination),
		)

		if opts.ShowMap && v.MapReference.Href != "" {
			_, _ = fmt.Fprintf(w, "%33s%s %s\n", "", c.Muted("Map:"), v.MapReference.Href)
		}
	}
}

// RenderRoutes renders the route catalogue
func RenderRoutes(w io.Writer, routes []models.RouteDescriptor, opts TableOptions) {
	if len(routes) == 0 {
		_, _ = fmt.Fprintln(w, "No routes configured.")
		return
	}

	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Routes:"))
	_, _ = fmt.Fprintln(w)

	for _, r := range routes {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Route("%-7s", r.ID), r.Name)
		_, _ = fmt.Fprintf(w, "    %s %s  %s %s\n",
			c.Muted("Direction:"),
			c.Direction(string(r.Direction)),
			c.Muted("Color:"),
			r.Color,
		)
		_, _ = fmt.Fprintf(w, "    %s transit vehicles %s\n", c.Muted("Use:"), r.ID)
		_, _ = fmt.Fprintln(w)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

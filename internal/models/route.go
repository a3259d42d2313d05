package models

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var routesYAML []byte

// Waypoint is a [latitude, longitude] pair on a simulation path
type Waypoint []float64

// Lat returns the latitude of the waypoint
func (w Waypoint) Lat() float64 { return w[0] }

// Lon returns the longitude of the waypoint
func (w Waypoint) Lon() float64 { return w[1] }

// RouteDescriptor is read-only reference data for a route
type RouteDescriptor struct {
	ID        string     `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Direction Direction  `yaml:"direction" json:"direction"`
	Color     string     `yaml:"color" json:"color"`
	Vehicles  int        `yaml:"vehicles" json:"-"`
	Forward   Direction  `yaml:"forward" json:"-"`
	Path      []Waypoint `yaml:"path" json:"-"`
}

// HasPath reports whether the route has a usable simulation path
func (r RouteDescriptor) HasPath() bool {
	return len(r.Path) >= 2
}

// RouteCatalog is an ordered, immutable set of route descriptors
type RouteCatalog struct {
	routes []RouteDescriptor
}

type routeFile struct {
	Routes []RouteDescriptor `yaml:"routes"`
}

// ParseRoutes decodes a routes YAML document
func ParseRoutes(data []byte) (*RouteCatalog, error) {
	var f routeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse routes: %w", err)
	}

	seen := make(map[string]bool, len(f.Routes))
	for i, r := range f.Routes {
		if r.ID == "" {
			return nil, fmt.Errorf("route %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("route %s: duplicate id", r.ID)
		}
		seen[r.ID] = true
		for _, wp := range r.Path {
			if len(wp) != 2 {
				return nil, fmt.Errorf("route %s: waypoint needs latitude and longitude", r.ID)
			}
			if err := ValidateCoordinates(wp.Lat(), wp.Lon()); err != nil {
				return nil, fmt.Errorf("route %s: %w", r.ID, err)
			}
		}
	}

	return &RouteCatalog{routes: f.Routes}, nil
}

// DefaultRoutes returns the embedded route catalogue
func DefaultRoutes() *RouteCatalog {
	c, err := ParseRoutes(routesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns a copy of the routes in catalogue order
func (c *RouteCatalog) All() []RouteDescriptor {
	out := make([]RouteDescriptor, len(c.routes))
	copy(out, c.routes)
	return out
}

// IDs returns the route ids in catalogue order
func (c *RouteCatalog) IDs() []string {
	ids := make([]string, len(c.routes))
	for i, r := range c.routes {
		ids[i] = r.ID
	}
	return ids
}

// Lookup finds a route by id, accepting "99" for "099"
func (c *RouteCatalog) Lookup(id string) (RouteDescriptor, bool) {
	id = strings.TrimSpace(id)
	for _, r := range c.routes {
		if strings.EqualFold(r.ID, id) || r.ID == "0"+id {
			return r, true
		}
	}
	return RouteDescriptor{}, false
}

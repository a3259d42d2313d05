package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidCoordinates is returned when a vehicle position is not a usable point on the globe
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Direction is the travel direction reported for a vehicle
type Direction string

const (
	DirectionUnknown Direction = ""
	DirectionNorth   Direction = "NORTH"
	DirectionSouth   Direction = "SOUTH"
	DirectionEast    Direction = "EAST"
	DirectionWest    Direction = "WEST"
)

// ParseDirection normalizes an upstream direction value.
// RTTI uses both the bare compass word and the "...BOUND" form depending on endpoint.
func ParseDirection(s string) Direction {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "BOUND")

	switch s {
	case "NORTH", "N":
		return DirectionNorth
	case "SOUTH", "S":
		return DirectionSouth
	case "EAST", "E":
		return DirectionEast
	case "WEST", "W":
		return DirectionWest
	default:
		return DirectionUnknown
	}
}

// Opposite returns the reverse travel direction
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionNorth
	case DirectionEast:
		return DirectionWest
	case DirectionWest:
		return DirectionEast
	default:
		return DirectionUnknown
	}
}

// Short returns a one-letter abbreviation for table output
func (d Direction) Short() string {
	if d == DirectionUnknown {
		return "?"
	}
	return string(d)[:1]
}

// MapReference links to the upstream's route map for a vehicle
type MapReference struct {
	Href string `json:"Href"`
}

// VehicleRecord is one observed vehicle position.
// JSON field names follow the upstream RTTI payload.
type VehicleRecord struct {
	VehicleID    string       `json:"VehicleNo"`
	RouteID      string       `json:"RouteNo"`
	Direction    Direction    `json:"Direction"`
	Destination  string       `json:"Destination"`
	Pattern      string       `json:"Pattern"`
	Latitude     float64      `json:"Latitude"`
	Longitude    float64      `json:"Longitude"`
	RecordedAt   string       `json:"RecordedTime"`
	MapReference MapReference `json:"RouteMap"`
}

// VehicleFields carries the raw values a VehicleRecord is built from
type VehicleFields struct {
	VehicleID   string
	RouteID     string
	Direction   string
	Destination string
	Pattern     string
	Latitude    float64
	Longitude   float64
	RecordedAt  string
	MapHref     string
}

// NewVehicleRecord builds a VehicleRecord, rejecting positions that are
// not finite or fall outside latitude [-90,90] / longitude [-180,180].
func NewVehicleRecord(f VehicleFields) (VehicleRecord, error) {
	if err := ValidateCoordinates(f.Latitude, f.Longitude); err != nil {
		return VehicleRecord{}, err
	}

	return VehicleRecord{
		VehicleID:    f.VehicleID,
		RouteID:      f.RouteID,
		Direction:    ParseDirection(f.Direction),
		Destination:  f.Destination,
		Pattern:      f.Pattern,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		RecordedAt:   f.RecordedAt,
		MapReference: MapReference{Href: f.MapHref},
	}, nil
}

// ValidateCoordinates checks that a latitude/longitude pair is usable
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, lon)
	}
	return nil
}

// FilterByRoute returns vehicles on the given route. RTTI pads route numbers
// to three digits, so "99" also matches "099". An empty route returns all vehicles.
func FilterByRoute(vehicles []VehicleRecord, route string) []VehicleRecord {
	route = strings.TrimSpace(route)
	if route == "" {
		return vehicles
	}

	filtered := make([]VehicleRecord, 0, len(vehicles))
	for _, v := range vehicles {
		if strings.EqualFold(v.RouteID, route) || v.RouteID == "0"+route {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

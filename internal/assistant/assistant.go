// Package assistant exposes live vehicle state to a conversational assistant.
// It provides the tool declaration the model is offered, answers the tool
// call from the vehicles already on hand, and builds the system preamble.
// The model call itself is made by the caller.
package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

// ToolName is the function the assistant may call
const ToolName = "getBusLocations"

// unfilteredLimit caps the number of buses returned when no route is given
const unfilteredLimit = 10

// ErrUnknownTool is returned for a tool call this package does not serve
var ErrUnknownTool = errors.New("unknown tool")

// Property describes one tool parameter
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Parameters is the JSON schema of the tool arguments
type Parameters struct {
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Properties  map[string]Property `json:"properties"`
	Required    []string            `json:"required"`
}

// FunctionDeclaration is the tool definition handed to the model
type FunctionDeclaration struct {
	Name       string     `json:"name"`
	Parameters Parameters `json:"parameters"`
}

// ToolDeclaration returns the getBusLocations declaration
func ToolDeclaration() FunctionDeclaration {
	return FunctionDeclaration{
		Name: ToolName,
		Parameters: Parameters{
			Type:        "OBJECT",
			Description: "Get current real-time locations of buses for a specific route or all routes.",
			Properties: map[string]Property{
				"routeNo": {
					Type:        "STRING",
					Description: `The route number to filter by (e.g., "099", "019"). If omitted, returns all buses.`,
				},
			},
			Required: []string{},
		},
	}
}

// BusLocation is one vehicle as reported to the assistant
type BusLocation struct {
	Route       string `json:"route"`
	Vehicle     string `json:"vehicle"`
	Direction   string `json:"direction"`
	Location    string `json:"location"`
	Destination string `json:"destination"`
}

// ToolResponse is the payload returned for a getBusLocations call
type ToolResponse struct {
	Buses []BusLocation `json:"buses"`
}

// BusLocations answers a getBusLocations call from the given vehicles.
// A route matches ignoring case, exactly or with a leading zero ("99" matches "099").
// Without a route the first ten vehicles are returned.
func BusLocations(vehicles []models.VehicleRecord, routeNo string) []BusLocation {
	routeNo = strings.TrimSpace(routeNo)

	relevant := models.FilterByRoute(vehicles, routeNo)
	if routeNo == "" {
		relevant = relevant[:min(len(relevant), unfilteredLimit)]
	}

	out := make([]BusLocation, 0, len(relevant))
	for _, v := range relevant {
		out = append(out, BusLocation{
			Route:       v.RouteID,
			Vehicle:     v.VehicleID,
			Direction:   string(v.Direction),
			Location:    fmt.Sprintf("%.4f, %.4f", v.Latitude, v.Longitude),
			Destination: v.Destination,
		})
	}
	return out
}

type toolArgs struct {
	RouteNo string `json:"routeNo"`
}

// HandleToolCall dispatches a function call emitted by the model
func HandleToolCall(name string, args json.RawMessage, vehicles []models.VehicleRecord) (*ToolResponse, error) {
	if name != ToolName {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	var a toolArgs
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("failed to parse %s arguments: %w", name, err)
		}
	}

	return &ToolResponse{Buses: BusLocations(vehicles, a.RouteNo)}, nil
}

// SystemContext returns the assistant's system instruction
func SystemContext(now time.Time) string {
	var b strings.Builder
	b.WriteString("You are an expert transit assistant for Vancouver's TransLink network.\n")
	b.WriteString("You have access to real-time bus data.\n")
	b.WriteString("Always be helpful, concise, and friendly.\n")
	b.WriteString("When users ask about specific buses, look at the provided context or use tools to find them.\n")
	b.WriteString("Vancouver uses Compass Cards. The SkyTrain, SeaBus, and Buses are the main modes.\n")
	b.WriteString("The 99 B-Line is a famous rapid bus on Broadway.\n\n")
	b.WriteString("Current Date: ")
	b.WriteString(now.Format("Mon, 02 Jan 2006 15:04:05 MST"))
	b.WriteString("\n")
	return b.String()
}

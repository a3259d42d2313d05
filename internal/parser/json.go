package parser

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

// flexString accepts a JSON string or number; RTTI is not consistent about
// quoting codes and vehicle numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or numeric string. Anything else leaves it
// unset instead of failing the whole document, so one bad vehicle is dropped
// rather than poisoning the list.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		f.value, f.set = v, true
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			f.value, f.set = parsed, true
		}
	}
	return nil
}

type jsonRouteMap struct {
	Href string `json:"Href"`
}

type jsonVehicle struct {
	VehicleNo    flexString   `json:"VehicleNo"`
	RouteNo      flexString   `json:"RouteNo"`
	Direction    string       `json:"Direction"`
	Destination  string       `json:"Destination"`
	Pattern      string       `json:"Pattern"`
	Latitude     flexFloat    `json:"Latitude"`
	Longitude    flexFloat    `json:"Longitude"`
	RecordedTime string       `json:"RecordedTime"`
	RouteMap     jsonRouteMap `json:"RouteMap"`
}

func (v jsonVehicle) toRecord() (models.VehicleRecord, bool) {
	if !v.Latitude.set || !v.Longitude.set {
		return models.VehicleRecord{}, false
	}
	rec, err := models.NewVehicleRecord(models.VehicleFields{
		VehicleID:   string(v.VehicleNo),
		RouteID:     string(v.RouteNo),
		Direction:   v.Direction,
		Destination: v.Destination,
		Pattern:     v.Pattern,
		Latitude:    v.Latitude.value,
		Longitude:   v.Longitude.value,
		RecordedAt:  v.RecordedTime,
		MapHref:     v.RouteMap.Href,
	})
	return rec, err == nil
}

type jsonError struct {
	Code    flexString `json:"Code"`
	Message string     `json:"Message"`
}

func parseJSON(body []byte) Outcome {
	if body[0] == '[' {
		var list []jsonVehicle
		if err := json.Unmarshal(body, &list); err != nil {
			return unparseable(FormatJSON)
		}
		vehicles := make([]models.VehicleRecord, 0, len(list))
		for _, v := range list {
			if rec, ok := v.toRecord(); ok {
				vehicles = append(vehicles, rec)
			}
		}
		return success(FormatJSON, vehicles)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return unparseable(FormatJSON)
	}

	if _, ok := probe["Code"]; ok {
		var e jsonError
		if err := json.Unmarshal(body, &e); err == nil && strings.TrimSpace(string(e.Code)) != "" {
			return upstreamError(FormatJSON, strings.TrimSpace(string(e.Code)), e.Message)
		}
	}

	if _, ok := probe["VehicleNo"]; ok {
		var v jsonVehicle
		if err := json.Unmarshal(body, &v); err != nil {
			return unparseable(FormatJSON)
		}
		if rec, ok := v.toRecord(); ok {
			return success(FormatJSON, []models.VehicleRecord{rec})
		}
		return success(FormatJSON, nil)
	}

	return unparseable(FormatJSON)
}

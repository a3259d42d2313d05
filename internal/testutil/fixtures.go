package testutil

import (
	"encoding/json"
	"fmt"
)

// Sample upstream (TransLink RTTI) bodies

// SampleVehiclesJSON is a two-vehicle JSON success body
const SampleVehiclesJSON = `[
	{
		"VehicleNo": "9412",
		"TripId": 12345,
		"RouteNo": "099",
		"Direction": "WEST",
		"Destination": "UBC",
		"Pattern": "WB1",
		"Latitude": 49.2634,
		"Longitude": -123.1172,
		"RecordedTime": "02:14:33 pm",
		"RouteMap": {"Href": "https://nb.translink.ca/geodata/099.kmz"}
	},
	{
		"VehicleNo": "9418",
		"TripId": 12346,
		"RouteNo": "099",
		"Direction": "EAST",
		"Destination": "COMMERCIAL-BROADWAY STN",
		"Pattern": "EB1",
		"Latitude": 49.2648,
		"Longitude": -123.1652,
		"RecordedTime": "02:14:41 pm",
		"RouteMap": {"Href": "https://nb.translink.ca/geodata/099.kmz"}
	}
]`

// SampleSingleVehicleJSON is a bare vehicle object, as returned for a vehicle lookup
const SampleSingleVehicleJSON = `{"VehicleNo":"2201","RouteNo":"019","Direction":"EAST","Destination":"METROTOWN STN","Pattern":"E1","Latitude":49.2811,"Longitude":-123.1023,"RecordedTime":"02:15:02 pm","RouteMap":{"Href":""}}`

// SampleVehiclesXML is a one-vehicle XML success body
const SampleVehiclesXML = `<?xml version="1.0" encoding="utf-8"?>
<Buses xmlns:i="http://www.w3.org/2001/XMLSchema-instance">
  <Bus>
    <VehicleNo>099-1</VehicleNo>
    <TripId>12345</TripId>
    <RouteNo>099</RouteNo>
    <Direction>WEST</Direction>
    <Destination>UBC</Destination>
    <Pattern>Full</Pattern>
    <Latitude>49.26</Latitude>
    <Longitude>-123.10</Longitude>
    <RecordedTime>12:00</RecordedTime>
    <RouteMap><Href>https://nb.translink.ca/geodata/099.kmz</Href></RouteMap>
  </Bus>
</Buses>`

// SampleEmptyBusesXML is a valid empty collection
const SampleEmptyBusesXML = `<?xml version="1.0" encoding="utf-8"?><Buses xmlns:i="http://www.w3.org/2001/XMLSchema-instance" />`

// UpstreamErrorXML returns an RTTI XML error document
func UpstreamErrorXML(code, message string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?><Error xmlns:i="http://www.w3.org/2001/XMLSchema-instance"><Code>%s</Code><Message>%s</Message></Error>`, code, message)
}

// UpstreamErrorJSON returns an RTTI JSON error document
func UpstreamErrorJSON(code, message string) string {
	return fmt.Sprintf(`{"Code":%q,"Message":%q}`, code, message)
}

// Envelope wraps a body the way an enveloping relay does
func Envelope(httpCode int, contents string) string {
	data, err := json.Marshal(map[string]any{
		"contents": contents,
		"status": map[string]any{
			"url":            "https://api.translink.ca/rttiapi/v1/buses",
			"content_type":   "application/xml; charset=utf-8",
			"http_code":      httpCode,
			"response_time":  87,
			"content_length": len(contents),
		},
	})
	if err != nil {
		panic(err)
	}
	return string(data)
}

package api

import (
	"net/url"
	"strings"
)

const (
	// EndpointBuses returns the current position of every bus, optionally filtered
	// Required params: apikey. Optional: routeNo
	EndpointBuses = "/buses"

	// nonceParam defeats caches between us and the upstream
	nonceParam = "_"
)

// Public relays, in the order they are tried
const (
	// AllOriginsJSON wraps the upstream body in a JSON envelope
	AllOriginsJSON = "https://api.allorigins.win/get?disableCache=true&url="

	// AllOriginsRaw passes the upstream body through unchanged
	AllOriginsRaw = "https://api.allorigins.win/raw?disableCache=true&url="

	// CorsProxy passes the upstream body through unchanged
	CorsProxy = "https://corsproxy.io/?url="
)

// TargetURL builds the upstream vehicle query. Parameters are written in a
// fixed order: apikey, routeNo (when set), then the cache-busting nonce.
func TargetURL(baseURL, apiKey, route, nonce string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString(EndpointBuses)
	b.WriteString("?apikey=")
	b.WriteString(url.QueryEscape(apiKey))
	if route != "" {
		b.WriteString("&routeNo=")
		b.WriteString(url.QueryEscape(route))
	}
	b.WriteString("&" + nonceParam + "=")
	b.WriteString(url.QueryEscape(nonce))
	return b.String()
}

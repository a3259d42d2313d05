package api

import "strings"

// Classification is the action an upstream error code maps to
type Classification int

const (
	// UnknownUpstreamError is any code not in the table; the next relay is tried
	UnknownUpstreamError Classification = iota
	// EmptyResult means the query succeeded but matched no vehicles
	EmptyResult
	// RouteNotFound means the route filter does not exist; treated as empty
	RouteNotFound
	// FatalCredential means the API key was rejected; no relay can help
	FatalCredential
)

// String returns a human-readable classification name
func (c Classification) String() string {
	switch c {
	case EmptyResult:
		return "empty-result"
	case RouteNotFound:
		return "route-not-found"
	case FatalCredential:
		return "fatal-credential"
	default:
		return "unknown"
	}
}

// Terminal reports whether the classification ends the relay chain
func (c Classification) Terminal() bool {
	return c != UnknownUpstreamError
}

// RTTI error codes
const (
	CodeInvalidAPIKey = "1002"
	CodeNoData        = "1012"
	CodeRouteNotFound = "3004"
	CodeNoBusesFound  = "3005"
)

var classifications = map[string]Classification{
	CodeNoBusesFound:  EmptyResult,
	CodeNoData:        EmptyResult,
	CodeRouteNotFound: RouteNotFound,
	CodeInvalidAPIKey: FatalCredential,
}

// Classify maps an upstream error code onto a Classification. Matching is
// exact after trimming surrounding whitespace.
func Classify(code string) Classification {
	if c, ok := classifications[strings.TrimSpace(code)]; ok {
		return c
	}
	return UnknownUpstreamError
}

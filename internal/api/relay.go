package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Nefnief-tech/transit-app-test/internal/config"
)

// Strategy names
const (
	StrategyCustom         = "custom"
	StrategyDirect         = "direct"
	StrategyAllOriginsJSON = "allorigins-json"
	StrategyAllOriginsRaw  = "allorigins-raw"
	StrategyCorsProxy      = "corsproxy"
)

// urlPlaceholder is replaced by the escaped target in custom relay templates
const urlPlaceholder = "{url}"

// RelayStrategy is one way of reaching the upstream API
type RelayStrategy struct {
	Name string
	// Envelope is set when the relay wraps the upstream body in a JSON envelope
	Envelope bool
	// Build turns the upstream target URL into the URL actually requested
	Build func(target string) string
}

// PrefixRelay returns a relay that appends the escaped target to prefix
func PrefixRelay(name, prefix string, envelope bool) RelayStrategy {
	return RelayStrategy{
		Name:     name,
		Envelope: envelope,
		Build: func(target string) string {
			return prefix + url.QueryEscape(target)
		},
	}
}

// CustomRelay returns a relay built from a user template. A template with a
// {url} placeholder has it replaced by the escaped target; any other template
// has the escaped target appended.
func CustomRelay(template string, envelope bool) RelayStrategy {
	return RelayStrategy{
		Name:     StrategyCustom,
		Envelope: envelope,
		Build: func(target string) string {
			escaped := url.QueryEscape(target)
			if strings.Contains(template, urlPlaceholder) {
				return strings.ReplaceAll(template, urlPlaceholder, escaped)
			}
			return template + escaped
		},
	}
}

// DirectStrategy requests the upstream without a relay
func DirectStrategy() RelayStrategy {
	return RelayStrategy{
		Name:  StrategyDirect,
		Build: func(target string) string { return target },
	}
}

// DefaultRelays returns the built-in public relays in try order
func DefaultRelays() []RelayStrategy {
	return []RelayStrategy{
		PrefixRelay(StrategyAllOriginsJSON, AllOriginsJSON, true),
		PrefixRelay(StrategyAllOriginsRaw, AllOriginsRaw, false),
		PrefixRelay(StrategyCorsProxy, CorsProxy, false),
	}
}

// BuildStrategies returns the ordered strategy list for one fetch: the
// custom relay if configured, the direct strategy if enabled, then builtins.
func BuildStrategies(settings config.Settings, builtins []RelayStrategy) []RelayStrategy {
	strategies := make([]RelayStrategy, 0, len(builtins)+2)

	if custom := strings.TrimSpace(settings.CustomRelay); custom != "" {
		strategies = append(strategies, CustomRelay(custom, settings.CustomRelayEnvelope))
	}
	if settings.Direct {
		strategies = append(strategies, DirectStrategy())
	}

	return append(strategies, builtins...)
}

// relayEnvelope is the wrapper an enveloping relay puts around the upstream body
type relayEnvelope struct {
	Contents *string `json:"contents"`
	Status   struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
}

// unwrapEnvelope extracts the upstream body from a relay envelope. The
// upstream reports business-logic errors with HTTP 500, so 500 passes through
// alongside 200; some relays omit the status entirely.
func unwrapEnvelope(body []byte) ([]byte, error) {
	var env relayEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRelayEnvelope, err)
	}

	if env.Contents == nil || strings.TrimSpace(*env.Contents) == "" {
		return nil, fmt.Errorf("%w: empty contents (upstream status %d)", ErrRelayEnvelope, env.Status.HTTPCode)
	}

	switch env.Status.HTTPCode {
	case 0, http.StatusOK, http.StatusInternalServerError:
		return []byte(*env.Contents), nil
	default:
		return nil, fmt.Errorf("%w: upstream status %d", ErrRelayEnvelope, env.Status.HTTPCode)
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nefnief-tech/transit-app-test/internal/config"
	"github.com/Nefnief-tech/transit-app-test/internal/models"
	"github.com/Nefnief-tech/transit-app-test/internal/parser"
	"github.com/Nefnief-tech/transit-app-test/internal/simulation"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 8 << 20
)

// Sources reported in FetchResult when no relay produced the data
const (
	SourceSimulation = "simulation"
	SourceNone       = "none"
)

var routePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// Generator produces a synthetic fleet
type Generator interface {
	Generate(route string) []models.VehicleRecord
}

// FetchResult is the outcome of one fetch
type FetchResult struct {
	Vehicles []models.VehicleRecord
	// Source is the name of the strategy that produced Vehicles
	Source string
	// Simulated is set when Vehicles came from the generator
	Simulated bool
	// Fallback is set when the generator stood in for exhausted relays
	Fallback bool
	// Attempts is the number of strategies tried
	Attempts int
}

// Client fetches vehicle positions through a chain of relay strategies
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
	now        func() time.Time
	nonce      func() string
	builtins   []RelayStrategy
	generator  Generator
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the per-attempt timeout used when settings carry none
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for attempt diagnostics
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock sets the time source for nonces and the default generator
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// WithNonce sets the cache-busting nonce source
func WithNonce(nonce func() string) ClientOption {
	return func(c *Client) {
		c.nonce = nonce
	}
}

// WithBuiltinRelays replaces the public relays tried after any custom or direct strategy
func WithBuiltinRelays(relays ...RelayStrategy) ClientOption {
	return func(c *Client) {
		c.builtins = relays
	}
}

// WithGenerator sets the synthetic fleet source
func WithGenerator(g Generator) ClientOption {
	return func(c *Client) {
		c.generator = g
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     zerolog.Nop(),
		now:        time.Now,
		builtins:   DefaultRelays(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.nonce == nil {
		c.nonce = func() string {
			return strconv.FormatInt(c.now().UnixMilli(), 10)
		}
	}
	if c.generator == nil {
		c.generator = simulation.NewGenerator(models.DefaultRoutes(), simulation.WithClock(c.now))
	}

	return c
}

// ValidateRoute checks a route filter. An empty route means every route.
func ValidateRoute(route string) error {
	if route == "" || routePattern.MatchString(route) {
		return nil
	}
	return ErrInvalidFormat("route", "1-10 letters or digits")
}

// FetchVehicles returns the current vehicles for route, or every route when empty
func (c *Client) FetchVehicles(ctx context.Context, settings config.Settings, route string) ([]models.VehicleRecord, error) {
	result, err := c.Fetch(ctx, settings, route)
	if err != nil {
		return nil, err
	}
	return result.Vehicles, nil
}

// Fetch returns the current vehicles together with where they came from.
// Strategies are tried one at a time, each exactly once. An upstream error
// classified as empty ends the chain with no vehicles; an invalid API key
// ends it with an error matching ErrInvalidCredential. When every strategy
// fails, settings.ExhaustedPolicy decides between the synthetic fleet and a
// *ChainExhaustedError.
func (c *Client) Fetch(ctx context.Context, settings config.Settings, route string) (*FetchResult, error) {
	route = strings.TrimSpace(route)
	if err := ValidateRoute(route); err != nil {
		return nil, err
	}

	if settings.Simulation {
		return c.simulate(route), nil
	}

	if strings.TrimSpace(settings.APIKey) == "" {
		if settings.MissingKeyPolicy == config.MissingKeyEmpty {
			c.logger.Debug().Msg("no API key configured, returning no vehicles")
			return &FetchResult{Vehicles: []models.VehicleRecord{}, Source: SourceNone}, nil
		}
		c.logger.Debug().Msg("no API key configured, using simulation")
		return c.simulate(route), nil
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	target := TargetURL(settings.BaseURL, strings.TrimSpace(settings.APIKey), route, c.nonce())
	strategies := BuildStrategies(settings, c.builtins)

	var failures []error
	for i, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vehicles, err := c.attempt(ctx, strategy, target, timeout)
		if err == nil {
			return &FetchResult{Vehicles: vehicles, Source: strategy.Name, Attempts: i + 1}, nil
		}

		if errors.Is(err, ErrInvalidCredential) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		failures = append(failures, err)
	}

	exhausted := &ChainExhaustedError{Attempts: failures}
	if settings.ExhaustedPolicy == config.ExhaustedError {
		return nil, exhausted
	}

	c.logger.Warn().Err(exhausted).Int("attempts", len(strategies)).Msg("relay chain exhausted, using simulation")

	result := c.simulate(route)
	result.Fallback = true
	result.Attempts = len(strategies)
	return result, nil
}

func (c *Client) simulate(route string) *FetchResult {
	vehicles := c.generator.Generate(route)
	if vehicles == nil {
		vehicles = []models.VehicleRecord{}
	}
	return &FetchResult{Vehicles: vehicles, Source: SourceSimulation, Simulated: true}
}

// attempt runs one strategy under its own deadline
func (c *Client) attempt(ctx context.Context, strategy RelayStrategy, target string, timeout time.Duration) ([]models.VehicleRecord, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	vehicles, err := c.try(attemptCtx, strategy, target)

	ev := c.logger.Debug().
		Str("strategy", strategy.Name).
		Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("attempt failed")
		return nil, &StrategyError{Strategy: strategy.Name, Err: err}
	}
	ev.Int("vehicles", len(vehicles)).Msg("attempt succeeded")

	return vehicles, nil
}

func (c *Client) try(ctx context.Context, strategy RelayStrategy, target string) ([]models.VehicleRecord, error) {
	body, err := c.get(ctx, strategy.Name, strategy.Build(target))
	if err != nil {
		return nil, err
	}

	if strategy.Envelope {
		body, err = unwrapEnvelope(body)
		if err != nil {
			return nil, err
		}
	}

	outcome := parser.Parse(body)
	switch outcome.Kind {
	case parser.Success:
		return outcome.Vehicles, nil

	case parser.UpstreamError:
		upstream := &UpstreamError{Code: outcome.Code, Message: outcome.Message}
		class := upstream.Classification()
		if !class.Terminal() {
			c.logger.Warn().
				Str("strategy", strategy.Name).
				Str("code", upstream.Code).
				Str("message", upstream.Message).
				Msg("unrecognized upstream error")
			return nil, upstream
		}
		if class == FatalCredential {
			return nil, upstream
		}
		return []models.VehicleRecord{}, nil

	default:
		return nil, fmt.Errorf("%w (format %s)", ErrUnparseable, outcome.Format)
	}
}

// get performs an HTTP GET request through a relay
func (c *Client) get(ctx context.Context, relay, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewAPIError(resp.StatusCode, resp.Status, relay)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

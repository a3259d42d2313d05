package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Nefnief-tech/transit-app-test/internal/api"
	"github.com/Nefnief-tech/transit-app-test/internal/assistant"
	"github.com/Nefnief-tech/transit-app-test/internal/config"
	"github.com/Nefnief-tech/transit-app-test/internal/logging"
	"github.com/Nefnief-tech/transit-app-test/internal/models"
	"github.com/Nefnief-tech/transit-app-test/internal/output"
	"github.com/Nefnief-tech/transit-app-test/internal/simulation"
	"github.com/Nefnief-tech/transit-app-test/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "transit",
	Short: "Live TransLink bus positions in the terminal",
	Long: `transit shows live vehicle positions for the TransLink (Vancouver) bus
network from the Real-Time Transit Information API.

Requests go through a chain of relays: a custom relay if configured, then
public relays. When no relay works, or no API key is configured, a
deterministic simulated fleet is shown instead.

Configuration is read from transit.yaml (current directory or
~/.config/transit), TRANSIT_* environment variables and flags, in
increasing precedence.

Quick Start:
  1. Launch TUI:              transit (or transit tui)
  2. List known routes:       transit routes
  3. Show vehicles:           transit vehicles 099 --api-key <key>
  4. Watch vehicles:          transit vehicles 099 --watch
  5. Simulated fleet:         transit simulate Seabus`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig string
	flagColor  string
	flagJSON   bool
)

// Command-specific flags
var (
	flagWatch   bool
	flagShowMap bool
	flagAt      string
)

func init() {
	rootCmd.AddCommand(vehiclesCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(assistantContextCmd)
	rootCmd.AddCommand(tuiCmd)

	d := config.Defaults()
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&flagConfig, "config", "", "Config file (default: ./transit.yaml or ~/.config/transit/transit.yaml)")
	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")

	// Bound to configuration keys; see config.Load
	pf.String("api-key", "", "TransLink RTTI API key")
	pf.String("relay", "", "Custom relay URL; {url} is replaced by the escaped target, otherwise it is appended")
	pf.Bool("relay-envelope", false, "Custom relay wraps responses in a JSON envelope")
	pf.Bool("simulate", d.Simulation, "Show the simulated fleet instead of live data")
	pf.Bool("direct", d.Direct, "Also try the API directly, without a relay")
	pf.Duration("timeout", d.Timeout, "Timeout for each relay attempt")
	pf.Duration("interval", d.PollInterval, "Refresh interval for --watch and the TUI")
	pf.String("on-exhausted", string(d.ExhaustedPolicy), "When every relay fails: simulate, error")
	pf.String("log-level", d.Log.Level, "Log level: trace, debug, info, warn, error")
	pf.String("log-format", d.Log.Format, "Log format: console, json")
	pf.String("log-file", "", "Write logs to this file")

	vehiclesCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh every poll interval")
	vehiclesCmd.Flags().BoolVarP(&flagShowMap, "map", "m", false, "Show the route map link for each vehicle")

	simulateCmd.Flags().StringVar(&flagAt, "at", "", "Timestamp to simulate (RFC 3339, default: now)")
}

// app bundles what every command needs
type app struct {
	settings config.Settings
	store    *config.Store
	logger   zerolog.Logger
	client   *api.Client
	closer   io.Closer
}

func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// setup loads configuration, opens the log and creates the API client.
// Logs go to logOut unless a log file is configured.
func setup(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	settings, err := config.Load(config.LoadOptions{
		File:  flagConfig,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.Open(settings.Log, logOut)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(
		api.WithTimeout(settings.Timeout),
		api.WithLogger(logger),
	)

	return &app{
		settings: settings,
		store:    config.NewStore(settings),
		logger:   logger,
		client:   client,
		closer:   closer,
	}, nil
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

// signalContext returns a context cancelled on interrupt
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles [route]",
	Short: "Show current vehicle positions",
	Long: `Show the current position of every bus, or of one route.

Route numbers may be given with or without the leading zero (99 or 099).

Examples:
  transit vehicles                  # Every vehicle
  transit vehicles 099              # B-Line only
  transit vehicles 099 --map        # With route map links
  transit vehicles 099 --json       # JSON in the upstream shape
  transit vehicles 099 --watch      # Refresh every 8 seconds
  transit vehicles --simulate       # Simulated fleet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVehicles,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List known routes",
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [route]",
	Short: "Show the simulated fleet",
	Long: `Show the synthetic fleet used when live data is unavailable.

The output depends only on the timestamp and route, so the same --at
value always yields the same positions.

Examples:
  transit simulate
  transit simulate Seabus --at 2025-03-14T15:09:26Z --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

var assistantContextCmd = &cobra.Command{
	Use:   "assistant-context [route]",
	Short: "Print the context handed to a transit assistant",
	Long: `Print, as JSON, what a conversational assistant is given: the system
instruction, the getBusLocations tool declaration and the tool response
built from the current vehicles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssistantContext,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the live fleet board",
	Long: `Launch a full-screen board of live vehicle positions.

Keybindings:
  Tab          Switch between route bar and vehicle list
  h/l          Move between routes
  j/k          Move between vehicles
  Enter        Select route
  a            All routes
  /            Type a route number
  r            Refresh now
  s            Toggle simulation mode
  q            Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func routeArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

func runVehicles(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	route := routeArg(args)
	if err := api.ValidateRoute(route); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	out := cmd.OutOrStdout()
	opts := output.TableOptions{Colors: output.NewColors(getColorMode()), ShowMap: flagShowMap}

	render := func(ctx context.Context, w io.Writer) error {
		if flagJSON {
			vehicles, err := a.client.FetchVehicles(ctx, a.store.Snapshot(), route)
			if err != nil {
				return err
			}
			return writeJSON(w, vehicles)
		}
		result, err := a.client.Fetch(ctx, a.store.Snapshot(), route)
		if err != nil {
			return err
		}
		output.RenderStatus(w, output.Status{
			Source:    result.Source,
			Simulated: result.Simulated,
			Fallback:  result.Fallback,
			Count:     len(result.Vehicles),
			At:        time.Now(),
		}, opts)
		_, _ = fmt.Fprintln(w)
		output.RenderVehicles(w, result.Vehicles, opts)
		return nil
	}

	if flagWatch {
		return output.Watch(ctx, out, a.settings.PollInterval, render)
	}
	return render(ctx, out)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	routes := models.DefaultRoutes().All()
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), routes)
	}
	output.RenderRoutes(cmd.OutOrStdout(), routes, output.TableOptions{Colors: output.NewColors(getColorMode())})
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	at, err := parseAt(flagAt, time.Now())
	if err != nil {
		return err
	}

	route := routeArg(args)
	if err := api.ValidateRoute(route); err != nil {
		return err
	}

	vehicles := simulation.NewGenerator(models.DefaultRoutes()).GenerateAt(at, route)
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), vehicles)
	}

	opts := output.TableOptions{Colors: output.NewColors(getColorMode())}
	output.RenderStatus(cmd.OutOrStdout(), output.Status{
		Source:    api.SourceSimulation,
		Simulated: true,
		Count:     len(vehicles),
		At:        at,
	}, opts)
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	output.RenderVehicles(cmd.OutOrStdout(), vehicles, opts)
	return nil
}

// assistantContext is the JSON document printed by assistant-context
type assistantContext struct {
	SystemInstruction string                          `json:"systemInstruction"`
	Tools             []assistant.FunctionDeclaration `json:"tools"`
	ToolResponse      *assistant.ToolResponse         `json:"toolResponse"`
	Source            string                          `json:"source"`
}

func runAssistantContext(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	route := routeArg(args)

	ctx, stop := signalContext()
	defer stop()

	// The assistant filters the full list itself, matching how it sees app state
	result, err := a.client.Fetch(ctx, a.store.Snapshot(), "")
	if err != nil {
		return err
	}

	toolArgs, err := json.Marshal(map[string]string{"routeNo": route})
	if err != nil {
		return err
	}
	resp, err := assistant.HandleToolCall(assistant.ToolName, toolArgs, result.Vehicles)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), assistantContext{
		SystemInstruction: assistant.SystemContext(time.Now()),
		Tools:             []assistant.FunctionDeclaration{assistant.ToolDeclaration()},
		ToolResponse:      resp,
		Source:            result.Source,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Logs would corrupt the alt screen; only a log file receives them
	a, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.New(a.client, a.store, models.DefaultRoutes().All())
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// parseAt parses the --at flag, defaulting to now
func parseAt(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q, expected RFC 3339 (2006-01-02T15:04:05Z07:00): %w", s, err)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

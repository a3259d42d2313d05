package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

type sprintf func(format string, a ...interface{}) string

// Colors holds the color functions for different output types
type Colors struct {
	Time      sprintf
	Route     sprintf
	Vehicle   sprintf
	Direction sprintf
	Dest      sprintf
	Coord     sprintf
	Header    sprintf
	Muted     sprintf
	Live      sprintf
	Simulated sprintf
	Warn      sprintf
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Time:      noColor,
			Route:     noColor,
			Vehicle:   noColor,
			Direction: noColor,
			Dest:      noColor,
			Coord:     noColor,
			Header:    noColor,
			Muted:     noColor,
			Live:      noColor,
			Simulated: noColor,
			Warn:      noColor,
		}
	}

	return &Colors{
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Route:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Vehicle:   color.New(color.FgWhite).SprintfFunc(),
		Direction: color.New(color.FgMagenta).SprintfFunc(),
		Dest:      color.New(color.FgWhite).SprintfFunc(),
		Coord:     color.New(color.FgHiBlack).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
		Live:      color.New(color.FgGreen, color.Bold).SprintfFunc(),
		Simulated: color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Warn:      color.New(color.FgRed, color.Bold).SprintfFunc(),
	}
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

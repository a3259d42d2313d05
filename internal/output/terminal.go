package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ClearScreen clears the terminal screen and moves cursor to top-left
func ClearScreen(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[2J\033[H")
}

// HideCursor hides the terminal cursor
func HideCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor
func ShowCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h")
}

// SetupSignalHandler returns a channel that receives interrupt signals
func SetupSignalHandler() chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}

// RenderFunc draws one frame of watch output
type RenderFunc func(ctx context.Context, w io.Writer) error

// Watch redraws the screen every interval until ctx is done or an interrupt
// arrives. A frame error is printed and watching continues.
func Watch(ctx context.Context, w io.Writer, interval time.Duration, render RenderFunc) error {
	sigChan := SetupSignalHandler()
	defer signal.Stop(sigChan)

	HideCursor(w)
	defer ShowCursor(w)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ClearScreen(w)
		if err := render(ctx, w); err != nil {
			_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintf(w, "\nRefreshing every %s. Press Ctrl+C to exit.\n", interval)

		if ctx.Err() != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-sigChan:
			_, _ = fmt.Fprintln(w)
			return nil
		case <-ticker.C:
		}
	}
}

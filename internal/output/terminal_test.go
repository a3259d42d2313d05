package output

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

func TestClearScreen(t *testing.T) {
	var buf bytes.Buffer
	ClearScreen(&buf)

	output := buf.String()
	// Should contain ANSI escape sequences for clear screen and move cursor
	testutil.AssertContains(t, output, "\033[2J")
	testutil.AssertContains(t, output, "\033[H")
}

func TestHideCursor(t *testing.T) {
	var buf bytes.Buffer
	HideCursor(&buf)

	output := buf.String()
	// Should contain ANSI escape sequence for hiding cursor
	testutil.AssertContains(t, output, "\033[?25l")
}

func TestShowCursor(t *testing.T) {
	var buf bytes.Buffer
	ShowCursor(&buf)

	output := buf.String()
	// Should contain ANSI escape sequence for showing cursor
	testutil.AssertContains(t, output, "\033[?25h")
}

func TestSetupSignalHandler(t *testing.T) {
	sigChan := SetupSignalHandler()

	// Verify channel is created
	testutil.AssertTrue(t, sigChan != nil)

	// Verify channel is buffered (won't block)
	select {
	case <-sigChan:
		t.Error("channel should be empty initially")
	case <-time.After(10 * time.Millisecond):
		// Expected - channel is empty
	}

	go func() {
		sigChan <- os.Interrupt
	}()

	// Verify we can receive from the channel
	select {
	case sig := <-sigChan:
		testutil.AssertEqual(t, sig, os.Interrupt)
	case <-time.After(100 * time.Millisecond):
		t.Error("should have received signal")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_RendersUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	frames := 0
	render := func(ctx context.Context, w io.Writer) error {
		frames++
		_, _ = io.WriteString(w, "frame\n")
		if frames == 3 {
			cancel()
		}
		return nil
	}

	err := Watch(ctx, &out, 5*time.Millisecond, render)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, frames, 3)

	s := out.String()
	testutil.AssertEqual(t, strings.Count(s, "frame"), 3)
	testutil.AssertEqual(t, strings.Count(s, "\033[2J"), 3)
	testutil.AssertContains(t, s, "\033[?25l")
	testutil.AssertContains(t, s, "\033[?25h")
	testutil.AssertContains(t, s, "Refreshing every 5ms")
}

func TestWatch_FrameErrorDoesNotStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	frames := 0
	render := func(ctx context.Context, w io.Writer) error {
		frames++
		if frames == 2 {
			cancel()
		}
		return errors.New("all relay strategies failed")
	}

	err := Watch(ctx, &out, 5*time.Millisecond, render)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, frames, 2)
	testutil.AssertEqual(t, strings.Count(out.String(), "Error: all relay strategies failed"), 2)
}

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

func TestParseAt(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	got, err := parseAt("", now)
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, got.Equal(now))

	got, err = parseAt("2025-06-01T12:00:00-07:00", now)
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, got.Equal(time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)))

	_, err = parseAt("yesterday", now)
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "invalid --at")
}

func TestRouteArg(t *testing.T) {
	testutil.AssertEqual(t, routeArg(nil), "")
	testutil.AssertEqual(t, routeArg([]string{" 099 "}), "099")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNil(t, writeJSON(&buf, map[string]int{"count": 2}))
	testutil.AssertEqual(t, buf.String(), "{\n  \"count\": 2\n}\n")
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"vehicles", "routes", "simulate", "assistant-context", "tui"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		testutil.AssertNil(t, err)
		testutil.AssertEqual(t, cmd.Name(), name)
	}
}

func TestPersistentFlagsMatchConfigKeys(t *testing.T) {
	for _, name := range []string{
		"api-key", "relay", "relay-envelope", "simulate", "direct", "timeout",
		"interval", "on-exhausted", "log-level", "log-format", "log-file",
	} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Nefnief-tech/transit-app-test/internal/config"
	"github.com/Nefnief-tech/transit-app-test/internal/testutil"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "json")

	logger.Debug().Str("strategy", "allorigins-json").Msg("attempt")

	var entry map[string]any
	testutil.AssertNil(t, json.Unmarshal(buf.Bytes(), &entry))
	testutil.AssertEqual(t, entry["level"], any("debug"))
	testutil.AssertEqual(t, entry["strategy"], any("allorigins-json"))
	testutil.AssertEqual(t, entry["message"], any("attempt"))
	testutil.AssertTrue(t, entry["time"] != nil)
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info().Msg("hidden")
	testutil.AssertEqual(t, buf.Len(), 0)

	logger.Warn().Msg("shown")
	testutil.AssertContains(t, buf.String(), "shown")
}

func TestNew_DefaultsToInfo(t *testing.T) {
	logger := New(&bytes.Buffer{}, "loud", "json")
	testutil.AssertEqual(t, logger.GetLevel(), zerolog.InfoLevel)

	logger = New(&bytes.Buffer{}, "", "json")
	testutil.AssertEqual(t, logger.GetLevel(), zerolog.InfoLevel)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "console")

	logger.Warn().Str("code", "1234").Msg("upstream error")

	out := buf.String()
	testutil.AssertContains(t, out, "WRN")
	testutil.AssertContains(t, out, "upstream error")
	testutil.AssertContains(t, out, "code=1234")
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transit.log")

	logger, closer, err := Open(config.LogConfig{Level: "info", Format: "json", File: path}, os.Stderr)
	testutil.AssertNil(t, err)
	logger.Info().Msg("written")
	testutil.AssertNil(t, closer.Close())

	data, err := os.ReadFile(path)
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, string(data), "written")
}

func TestOpen_NoFile(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Open(config.LogConfig{Level: "info", Format: "json"}, &buf)
	testutil.AssertNil(t, err)
	logger.Info().Msg("fallback")
	testutil.AssertNil(t, closer.Close())
	testutil.AssertContains(t, buf.String(), "fallback")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefaults_AreValid(t *testing.T) {
	d := Defaults()
	require.NoError(t, d.Validate())
	assert.Equal(t, 10*time.Second, d.Timeout)
	assert.Equal(t, 8*time.Second, d.PollInterval)
	assert.Equal(t, ExhaustedSimulate, d.ExhaustedPolicy)
	assert.Equal(t, MissingKeySimulate, d.MissingKeyPolicy)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
api_key: file-key
custom_relay: "https://relay.example.com/?u={url}"
custom_relay_envelope: true
timeout: 3s
poll_interval: 15s
exhausted_policy: error
missing_key_policy: empty
log:
  level: debug
  format: json
`)

	s, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "file-key", s.APIKey)
	assert.Equal(t, "https://relay.example.com/?u={url}", s.CustomRelay)
	assert.True(t, s.CustomRelayEnvelope)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, 15*time.Second, s.PollInterval)
	assert.Equal(t, ExhaustedError, s.ExhaustedPolicy)
	assert.Equal(t, MissingKeyEmpty, s.MissingKeyPolicy)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api_key: file-key\n")
	t.Setenv("TRANSIT_API_KEY", "env-key")
	t.Setenv("TRANSIT_LOG_LEVEL", "warn")

	s, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "env-key", s.APIKey)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TRANSIT_API_KEY", "env-key")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-key", "", "")
	fs.Bool("simulate", false, "")
	fs.String("on-exhausted", "simulate", "")
	require.NoError(t, fs.Parse([]string{"--api-key", "flag-key", "--simulate"}))

	s, err := Load(LoadOptions{File: writeConfig(t, "exhausted_policy: error\n"), Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, "flag-key", s.APIKey)
	assert.True(t, s.Simulation)
	// unchanged flag must not shadow the file value
	assert.Equal(t, ExhaustedError, s.ExhaustedPolicy)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad policy", "exhausted_policy: panic\n", "ExhaustedPolicy"},
		{"bad missing key policy", "missing_key_policy: ignore\n", "MissingKeyPolicy"},
		{"zero timeout", "timeout: 0s\n", "Timeout"},
		{"bad relay", "custom_relay: not a url\n", "CustomRelay"},
		{"bad log format", "log:\n  format: xml\n", "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{File: writeConfig(t, tt.body)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

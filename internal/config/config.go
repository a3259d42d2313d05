// Package config loads tracker settings and holds the mutable configuration
// store. The fetch core never reads the store directly; it is handed an
// immutable Settings snapshot per call.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the TransLink Real-Time Transit Information API
const DefaultBaseURL = "https://api.translink.ca/rttiapi/v1"

// ExhaustedPolicy decides what a fetch returns when every relay failed
type ExhaustedPolicy string

const (
	// ExhaustedSimulate returns the synthetic fleet instead
	ExhaustedSimulate ExhaustedPolicy = "simulate"
	// ExhaustedError returns the aggregated relay failures
	ExhaustedError ExhaustedPolicy = "error"
)

// MissingKeyPolicy decides what a fetch returns when no API key is configured
type MissingKeyPolicy string

const (
	// MissingKeySimulate behaves as if simulation mode were on
	MissingKeySimulate MissingKeyPolicy = "simulate"
	// MissingKeyEmpty returns an empty vehicle list
	MissingKeyEmpty MissingKeyPolicy = "empty"
)

// LogConfig configures the zerolog output
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	File   string `mapstructure:"file"`
}

// Settings is an immutable snapshot of the tracker configuration.
// It holds no reference types, so copies never share state.
type Settings struct {
	APIKey              string           `mapstructure:"api_key"`
	CustomRelay         string           `mapstructure:"custom_relay" validate:"omitempty,url"`
	CustomRelayEnvelope bool             `mapstructure:"custom_relay_envelope"`
	Simulation          bool             `mapstructure:"simulation"`
	Direct              bool             `mapstructure:"direct"`
	BaseURL             string           `mapstructure:"base_url" validate:"required,url"`
	Timeout             time.Duration    `mapstructure:"timeout" validate:"gt=0"`
	PollInterval        time.Duration    `mapstructure:"poll_interval" validate:"gt=0"`
	ExhaustedPolicy     ExhaustedPolicy  `mapstructure:"exhausted_policy" validate:"oneof=simulate error"`
	MissingKeyPolicy    MissingKeyPolicy `mapstructure:"missing_key_policy" validate:"oneof=simulate empty"`
	Log                 LogConfig        `mapstructure:"log"`
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		BaseURL:          DefaultBaseURL,
		Timeout:          10 * time.Second,
		PollInterval:     8 * time.Second,
		ExhaustedPolicy:  ExhaustedSimulate,
		MissingKeyPolicy: MissingKeySimulate,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// flagKeys maps CLI flag names onto configuration keys
var flagKeys = map[string]string{
	"api-key":        "api_key",
	"relay":          "custom_relay",
	"relay-envelope": "custom_relay_envelope",
	"simulate":       "simulation",
	"direct":         "direct",
	"timeout":        "timeout",
	"interval":       "poll_interval",
	"on-exhausted":   "exhausted_policy",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// File is an explicit config file; it must exist when set
	File string
	// Flags, when set, override file and environment values for flags the user changed
	Flags *pflag.FlagSet
}

// Load reads settings from defaults, an optional transit.yaml, TRANSIT_*
// environment variables and command-line flags, in increasing precedence.
func Load(opts LoadOptions) (Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("custom_relay", d.CustomRelay)
	v.SetDefault("custom_relay_envelope", d.CustomRelayEnvelope)
	v.SetDefault("simulation", d.Simulation)
	v.SetDefault("direct", d.Direct)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("exhausted_policy", string(d.ExhaustedPolicy))
	v.SetDefault("missing_key_policy", string(d.MissingKeyPolicy))
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("transit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// TRANSIT_API_KEY -> api_key, TRANSIT_LOG_LEVEL -> log.level
	v.SetEnvPrefix("TRANSIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// DefaultConfigDir returns the directory searched for transit.yaml
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "transit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "transit")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the settings are usable
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

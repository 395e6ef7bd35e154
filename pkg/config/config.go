// Package config resolves the Orca upstream connection settings from a local
// config file or from ORCA_* environment variables. A config file in the
// working directory always wins; the two sources are never merged.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// FileName is the well-known config file, looked up in the working directory.
const FileName = "orca.config.json"

// Defaults applied when a source omits the optional fields.
const (
	DefaultAPIURL  = "https://api.orcaai.io"
	DefaultTimeout = 30000
	DefaultRetries = 3
)

const tokenLength = 40

// ErrNotConfigured signals that no valid configuration source was found.
// This is a normal operating state, not a failure: the server still runs
// and advertises the context tool so the user can be told what is missing.
var ErrNotConfigured = errors.New("orca is not configured")

// Config holds a fully resolved set of upstream connection settings. A
// Config returned by Resolve is always complete and valid; there is no
// partially valid state.
type Config struct {
	APIURL      string
	APIToken    string
	Timeout     int // milliseconds
	Retries     int
	HuntEnabled bool
}

// Resolve determines the active configuration. The config file in the
// working directory wins outright when present, even if it turns out to be
// invalid; the environment is only consulted when no file exists. Any read,
// parse or validation failure collapses into ErrNotConfigured rather than
// propagating, so callers only ever see a valid Config or the absent signal.
func Resolve() (*Config, error) {
	if FileExists() {
		cfg, err := fromFile(FileName)
		if err != nil {
			log.Error("Invalid config file", "file", FileName, "error", err)
			return nil, ErrNotConfigured
		}
		return cfg, nil
	}

	cfg, err := fromEnv()
	if err != nil {
		log.Debug("No configuration in environment", "error", err)
		return nil, ErrNotConfigured
	}
	return cfg, nil
}

// FileExists reports whether the well-known config file is present. The
// context tool uses this to tell "file present but invalid" apart from
// "no source at all" when it writes its guidance text.
func FileExists() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// fromFile builds a candidate from the JSON config file. Shape:
// {apiUrl, apiToken, settings:{timeout, retries}, tools:{hunt}}.
func fromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg := &Config{
		APIURL:      v.GetString("apiUrl"),
		APIToken:    v.GetString("apiToken"),
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		HuntEnabled: true,
	}

	var err error
	if v.IsSet("settings.timeout") {
		if cfg.Timeout, err = cast.ToIntE(v.Get("settings.timeout")); err != nil {
			return nil, errors.Wrap(err, "settings.timeout")
		}
	}
	if v.IsSet("settings.retries") {
		if cfg.Retries, err = cast.ToIntE(v.Get("settings.retries")); err != nil {
			return nil, errors.Wrap(err, "settings.retries")
		}
	}
	if v.IsSet("tools.hunt") {
		if cfg.HuntEnabled, err = cast.ToBoolE(v.Get("tools.hunt")); err != nil {
			return nil, errors.Wrap(err, "tools.hunt")
		}
	}

	return finish(cfg)
}

// fromEnv builds a candidate entirely from ORCA_* environment variables.
func fromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORCA")
	v.AutomaticEnv()

	cfg := &Config{
		APIURL:      v.GetString("api_url"),
		APIToken:    v.GetString("api_token"),
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		HuntEnabled: v.GetString("tools_hunt") != "false",
	}
	if cfg.APIToken == "" {
		return nil, errors.New("ORCA_API_TOKEN is not set")
	}

	var err error
	if raw := v.GetString("timeout"); raw != "" {
		if cfg.Timeout, err = cast.ToIntE(raw); err != nil {
			return nil, errors.Wrap(err, "ORCA_TIMEOUT")
		}
	}
	if raw := v.GetString("retries"); raw != "" {
		if cfg.Retries, err = cast.ToIntE(raw); err != nil {
			return nil, errors.Wrap(err, "ORCA_RETRIES")
		}
	}

	return finish(cfg)
}

// finish fills remaining defaults and validates the candidate.
func finish(cfg *Config) (*Config, error) {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if errs := validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// validate returns the full list of field errors for a candidate, empty when
// the candidate is valid.
func validate(cfg *Config) []string {
	var errs []string
	if cfg.APIToken == "" {
		errs = append(errs, "apiToken is required")
	} else if !tokenValid(cfg.APIToken) {
		errs = append(errs, fmt.Sprintf("apiToken must be exactly %d alphanumeric characters", tokenLength))
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, "timeout must be a positive integer")
	}
	if cfg.Retries < 0 {
		errs = append(errs, "retries must not be negative")
	}
	return errs
}

func tokenValid(token string) bool {
	if len(token) != tokenLength {
		return false
	}
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package config loads client configuration from file, environment, and flags.
//
// Precedence, lowest to highest: built-in defaults, the YAML config file,
// the MAGICSTREAM_API_URL environment variable, then command-line flags.
// The layering is applied in one pass at startup so the effective
// configuration is deterministic for the life of the process.
package config

import (
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Defaults applied when neither file, environment, nor flags say otherwise.
const (
	DefaultAPIURL    = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultLogFormat = "text"
	DefaultLogLevel  = "info"
)

// EnvAPIURL overrides the service base address when set.
const EnvAPIURL = "MAGICSTREAM_API_URL"

// Config holds the effective client configuration.
type Config struct {
	// APIURL is the base address of the MagicStream movie service.
	APIURL string `koanf:"api_url"`
	// Timeout bounds each outbound HTTP request.
	Timeout time.Duration `koanf:"timeout"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`
	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level"`
}

// Load builds the effective configuration.
//
// path names the YAML config file. An empty path means "use nothing";
// a missing file at an explicit path is an error so typos don't silently
// fall back to defaults. flags may be nil when no flag overrides apply.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_UNREADABLE").
				With("path", path).
				Wrapf(err, "failed to load config file")
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		if err := k.Set("api_url", v); err != nil {
			return nil, oops.Code("CONFIG_ENV_OVERRIDE").Wrap(err)
		}
	}

	if flags != nil {
		// Flag keys use dashes; config keys use underscores.
		p := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			return flagKey(key), value
		})
		if err := k.Load(p, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAG_OVERRIDE").Wrap(err)
		}
	}

	cfg := &Config{}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
			Result:           cfg,
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, oops.Code("CONFIG_DECODE").Wrap(err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func flagKey(name string) string {
	switch name {
	case "api-url":
		return "api_url"
	case "log-format":
		return "log_format"
	case "log-level":
		return "log_level"
	default:
		return name
	}
}

func applyDefaults(cfg *Config) {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func validate(cfg *Config) error {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_format", cfg.LogFormat).
			Errorf("log format must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_level", cfg.LogLevel).
			Errorf("log level must be one of debug, info, warn, error")
	}
	return nil
}

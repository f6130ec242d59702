// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package config

import "log/slog"

// SlogLevel maps the configured log level onto a slog.Level.
// Unknown values were rejected by Load, so this only sees valid input.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

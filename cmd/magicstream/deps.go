// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"io"
	"os"

	"github.com/magicstream/magicstream/internal/xdg"
)

// Deps contains injectable dependencies for the CLI.
// All fields with nil values will use their default implementations.
type Deps struct {
	// SessionFileGetter returns the durable session record path.
	// Default: xdg.SessionFile
	SessionFileGetter func() (string, error)

	// ConfigFileGetter returns the default config file path.
	// Default: xdg.ConfigFile
	ConfigFileGetter func() (string, error)

	// Stdin supplies interactive input (login prompts, review text).
	// Default: os.Stdin
	Stdin io.Reader
}

// withDefaults fills nil fields with production implementations.
func (d *Deps) withDefaults() *Deps {
	out := &Deps{}
	if d != nil {
		*out = *d
	}
	if out.SessionFileGetter == nil {
		out.SessionFileGetter = xdg.SessionFile
	}
	if out.ConfigFileGetter == nil {
		out.ConfigFileGetter = xdg.ConfigFile
	}
	if out.Stdin == nil {
		out.Stdin = os.Stdin
	}
	return out
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/config"
	"github.com/magicstream/magicstream/internal/logging"
	"github.com/magicstream/magicstream/internal/session"
	"github.com/magicstream/magicstream/internal/transport"
	"github.com/magicstream/magicstream/internal/xdg"
)

// app holds the shared state every subcommand works against: one config,
// one session store, one authenticated client per process.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *session.Store
	client *api.Client
	auth   *transport.Authenticator
	stdin  io.Reader

	configFile string
	noInput    bool
}

// NewRootCmd creates the root command for the MagicStream CLI.
// deps may be nil for production defaults.
func NewRootCmd(deps *Deps) *cobra.Command {
	d := deps.withDefaults()
	a := &app{}

	cmd := &cobra.Command{
		Use:   "magicstream",
		Short: "MagicStream - a terminal client for the MagicStream movie service",
		Long: `MagicStream is a terminal client for browsing the MagicStream movie
catalog, viewing admin reviews, and (for admins) submitting reviews.

Sessions persist across invocations: log in once and protected commands
reuse the stored credential until logout or expiry.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, d)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.teardown()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("api-url", "", "service base URL (overrides config file and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().String("log-format", "", "log format (text or json)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.noInput, "no-input", false, "fail instead of prompting for input")

	cmd.AddCommand(NewLoginCmd(a))
	cmd.AddCommand(NewLogoutCmd(a))
	cmd.AddCommand(NewRegisterCmd(a))
	cmd.AddCommand(NewMoviesCmd(a))
	cmd.AddCommand(NewRecommendedCmd(a))
	cmd.AddCommand(NewMovieCmd(a))
	cmd.AddCommand(NewReviewCmd(a))
	cmd.AddCommand(NewStatusCmd(a))
	cmd.AddCommand(NewConfigCmd(a))

	return cmd
}

// setup builds the shared application state. It runs once per invocation
// before the selected subcommand.
func (a *app) setup(cmd *cobra.Command, deps *Deps) error {
	configPath := a.configFile
	if configPath == "" {
		// The default config file is optional; an explicit --config that
		// does not exist is an error inside config.Load.
		if path, err := deps.ConfigFileGetter(); err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				configPath = path
			}
		}
	}

	cfg, err := config.Load(configPath, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.SetDefault(logging.Options{
		Service: "magicstream",
		Version: version,
		Format:  cfg.LogFormat,
		Level:   cfg.SlogLevel(),
	})

	sessionPath, err := deps.SessionFileGetter()
	if err != nil {
		return err
	}
	if err := xdg.EnsureDir(filepath.Dir(sessionPath)); err != nil {
		return err
	}
	a.store = session.NewStore(sessionPath, a.logger)
	// Hydration runs concurrently with command startup; protected
	// commands gate on the guard, which waits for it to complete.
	go a.store.Initialize()

	tc, err := transport.NewClient(cfg.APIURL,
		transport.WithTimeout(cfg.Timeout),
		transport.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	a.auth = transport.NewAuthenticator(tc, a.store)
	a.auth.Attach()

	a.client = api.NewClient(tc, a.logger)
	a.stdin = deps.Stdin
	return nil
}

// teardown releases the interception registration.
func (a *app) teardown() {
	if a.auth != nil {
		a.auth.Detach()
	}
}

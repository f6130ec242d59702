// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/guard"
	"github.com/magicstream/magicstream/internal/render"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Long:  `Show who is logged in, if anyone, and which service the client talks to.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *app) runStatus(cmd *cobra.Command) error {
	// Wait out hydration so a stored session is reported, not missed.
	res, err := guard.Wait(cmd.Context(), a.store, "magicstream status")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	render.SessionStatus(out, res.Session, res.State == guard.StateAuthorized)
	cmd.Printf("Service: %s\n", a.cfg.APIURL)
	return nil
}

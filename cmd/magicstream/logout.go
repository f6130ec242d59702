// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/guard"
	"github.com/magicstream/magicstream/pkg/errutil"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session",
		Long: `Invalidate the session on the service and remove the local record.

The local session is always cleared, even when the service call fails:
being unable to reach the server must not leave a credential behind.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLogout(cmd)
		},
	}
}

func (a *app) runLogout(cmd *cobra.Command) error {
	res, err := guard.Wait(cmd.Context(), a.store, "magicstream logout")
	if err != nil {
		return err
	}
	if res.State != guard.StateAuthorized {
		cmd.Println("Not logged in.")
		return nil
	}

	if err := a.client.Logout(cmd.Context()); err != nil {
		errutil.LogWarn(a.logger, "server-side logout failed, clearing local session anyway", err)
	}
	a.store.Clear()

	cmd.Println("Logged out.")
	return nil
}

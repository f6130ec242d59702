// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/guard"
)

// requireSession gates a protected command on the navigation guard.
//
// The guard waits out session hydration, so a stored session is never
// mistaken for a missing one at startup. When the result is
// unauthorized the command "redirects" to login: the login flow runs
// right here, and on success the original command simply proceeds —
// the blocked attempt leaves no trace, the user ends up where they were
// headed. With --no-input the redirect degrades to an actionable error.
func (a *app) requireSession(cmd *cobra.Command, args []string) error {
	from := destination(cmd, args)

	res, err := guard.Wait(cmd.Context(), a.store, from)
	if err != nil {
		return err
	}
	if res.State == guard.StateAuthorized {
		return nil
	}

	if a.noInput {
		return oops.Code("AUTH_REQUIRED").
			With("from", res.Redirect.From).
			Errorf("you need to log in to use %q: run 'magicstream login'", res.Redirect.From)
	}

	cmd.Printf("You need to log in to use %q.\n", res.Redirect.From)
	if err := a.loginPrompt(cmd); err != nil {
		return err
	}
	return nil
}

// destination names where the user was headed, for the guard redirect.
func destination(cmd *cobra.Command, args []string) string {
	parts := append([]string{cmd.CommandPath()}, args...)
	return strings.Join(parts, " ")
}

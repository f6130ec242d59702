// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"bufio"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/render"
)

// loginConfig holds configuration for the login command.
type loginConfig struct {
	email    string
	password string
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(a *app) *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the MagicStream service",
		Long: `Authenticate against the MagicStream service and persist the session.

Credentials can be passed with flags or entered interactively. The
session survives across invocations until logout or until the service
rejects the credential.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLogin(cmd, cfg.email, cfg.password)
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")

	return cmd
}

// loginPrompt runs the interactive login flow. Used both by the login
// command and by the guard redirect from protected commands.
func (a *app) loginPrompt(cmd *cobra.Command) error {
	return a.runLogin(cmd, "", "")
}

func (a *app) runLogin(cmd *cobra.Command, email, password string) error {
	reader := bufio.NewReader(a.stdin)

	if email == "" {
		if a.noInput {
			return oops.Code("LOGIN_INPUT").Errorf("--email is required with --no-input")
		}
		cmd.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return oops.Code("LOGIN_INPUT").Wrapf(err, "failed to read email")
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		if a.noInput {
			return oops.Code("LOGIN_INPUT").Errorf("--password is required with --no-input")
		}
		cmd.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return oops.Code("LOGIN_INPUT").Wrapf(err, "failed to read password")
		}
		password = strings.TrimSpace(line)
	}

	sess, err := a.client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	if err := a.store.Set(sess); err != nil {
		return err
	}

	render.SessionStatus(cmd.OutOrStdout(), sess, true)
	return nil
}

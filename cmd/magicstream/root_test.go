// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd(nil)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	subcommands := []string{
		"login", "logout", "register",
		"movies", "recommended", "movie", "review",
		"status", "config",
	}
	for _, sub := range subcommands {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_LongDescription(t *testing.T) {
	cmd := NewRootCmd(nil)

	assert.Equal(t, "magicstream", cmd.Use)
	assert.Contains(t, cmd.Long, "terminal client", "Long description should say what this is")
	assert.Contains(t, cmd.Long, "Sessions persist", "Long description should mention session persistence")
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd(nil)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	flags := []string{"--config", "--api-url", "--log-format", "--log-level", "--no-input"}
	for _, flag := range flags {
		assert.Contains(t, output, flag, "Help missing %q flag", flag)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd(nil)
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

func TestMovieCommand_RequiresArgument(t *testing.T) {
	cmd := NewRootCmd(nil)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"movie"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg")
}

func TestReviewCommand_Properties(t *testing.T) {
	cmd := NewReviewCmd(&app{})

	assert.Equal(t, "review <imdb-id>", cmd.Use)
	assert.Contains(t, cmd.Long, "Admin", "Long description should mention the admin affordance")
	assert.NotNil(t, cmd.Flags().Lookup("text"))
}

func TestLoginCommand_Properties(t *testing.T) {
	cmd := NewLoginCmd(&app{})

	assert.Equal(t, "login", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("email"))
	assert.NotNil(t, cmd.Flags().Lookup("password"))
}

func TestRegisterCommand_Help(t *testing.T) {
	cmd := NewRootCmd(nil)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"register", "--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, flag := range []string{"--first-name", "--last-name", "--email", "--password", "--genre"} {
		assert.Contains(t, output, flag, "Help missing %q flag", flag)
	}
}

func TestDeps_WithDefaults(t *testing.T) {
	d := (*Deps)(nil).withDefaults()

	require.NotNil(t, d.SessionFileGetter)
	require.NotNil(t, d.ConfigFileGetter)
	require.NotNil(t, d.Stdin)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/render"
)

// NewMovieCmd creates the movie subcommand.
func NewMovieCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "movie <imdb-id>",
		Short: "Show one movie in detail",
		Long:  `Show a single movie, including its admin review. Requires a session.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd, args); err != nil {
				return err
			}
			return a.runMovie(cmd, args[0])
		},
	}
}

func (a *app) runMovie(cmd *cobra.Command, imdbID string) error {
	movie, err := a.client.GetMovie(cmd.Context(), imdbID)
	if err != nil {
		return err
	}

	render.MovieDetail(cmd.OutOrStdout(), movie)
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/render"
)

// moviesConfig holds configuration for the movies command.
type moviesConfig struct {
	genre string
}

// NewMoviesCmd creates the movies subcommand.
func NewMoviesCmd(a *app) *cobra.Command {
	cfg := &moviesConfig{}

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List the public movie catalog",
		Long: `List every movie in the MagicStream catalog. This view is public and
needs no session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMovies(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.genre, "genre", "", "only show movies with a matching genre (glob, e.g. 'Sci*')")

	return cmd
}

func (a *app) runMovies(cmd *cobra.Command, cfg *moviesConfig) error {
	movies, err := a.client.ListMovies(cmd.Context())
	if err != nil {
		return err
	}

	movies, err = api.FilterByGenre(movies, cfg.genre)
	if err != nil {
		return err
	}

	render.MovieTable(cmd.OutOrStdout(), movies)
	return nil
}

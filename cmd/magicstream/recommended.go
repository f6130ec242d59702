// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/render"
)

// recommendedConfig holds configuration for the recommended command.
type recommendedConfig struct {
	genre string
}

// NewRecommendedCmd creates the recommended subcommand.
func NewRecommendedCmd(a *app) *cobra.Command {
	cfg := &recommendedConfig{}

	cmd := &cobra.Command{
		Use:   "recommended",
		Short: "List movies recommended for your account",
		Long: `List the movies the service recommends based on your favourite
genres. Requires a session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd, args); err != nil {
				return err
			}
			return a.runRecommended(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.genre, "genre", "", "only show movies with a matching genre (glob, e.g. 'Sci*')")

	return cmd
}

func (a *app) runRecommended(cmd *cobra.Command, cfg *recommendedConfig) error {
	movies, err := a.client.Recommended(cmd.Context())
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

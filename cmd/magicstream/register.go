// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/api"
)

// registerConfig holds configuration for the register command.
type registerConfig struct {
	firstName string
	lastName  string
	email     string
	password  string
	genres    []string
}

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd(a *app) *cobra.Command {
	cfg := &registerConfig{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a MagicStream account",
		Long: `Create a new account on the MagicStream service. New accounts get the
USER role; at least one favourite genre is required for recommendations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRegister(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&cfg.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")
	cmd.Flags().StringSliceVar(&cfg.genres, "genre", nil, "favourite genre (repeatable)")

	return cmd
}

func (a *app) runRegister(cmd *cobra.Command, cfg *registerConfig) error {
	if cfg.firstName == "" || cfg.lastName == "" || cfg.email == "" || cfg.password == "" {
		return oops.Code("REGISTER_INPUT").
			Errorf("--first-name, --last-name, --email, and --password are required")
	}
	if len(cfg.genres) == 0 {
		return oops.Code("REGISTER_INPUT").
			Errorf("at least one --genre is required")
	}

	genres := make([]api.Genre, 0, len(cfg.genres))
	for i, name := range cfg.genres {
		genres = append(genres, api.Genre{GenreID: i + 1, GenreName: name})
	}

	err := a.client.Register(cmd.Context(), api.RegisterRequest{
		FirstName:       cfg.firstName,
		LastName:        cfg.lastName,
		Email:           cfg.email,
		Password:        cfg.password,
		Role:            "USER",
		FavouriteGenres: genres,
	})
	if err != nil {
		return err
	}

	cmd.Println("Account created. Run 'magicstream login' to sign in.")
	return nil
}

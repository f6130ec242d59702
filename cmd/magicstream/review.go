// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/magicstream/magicstream/internal/render"
	"github.com/magicstream/magicstream/internal/review"
)

// reviewConfig holds configuration for the review command.
type reviewConfig struct {
	text string
}

// NewReviewCmd creates the review subcommand.
func NewReviewCmd(a *app) *cobra.Command {
	cfg := &reviewConfig{}

	cmd := &cobra.Command{
		Use:   "review <imdb-id>",
		Short: "View or edit the admin review of a movie",
		Long: `View the admin review of a movie. Admin accounts can edit it: pass
the new text with --text or enter it interactively.

Non-admin accounts see the review read-only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd, args); err != nil {
				return err
			}
			return a.runReview(cmd, args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.text, "text", "", "new review text (admins only)")

	return cmd
}

func (a *app) runReview(cmd *cobra.Command, imdbID string, cfg *reviewConfig) error {
	flow := review.NewFlow(a.client, a.store, a.logger)
	if err := flow.Load(cmd.Context(), imdbID); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	movie, _ := flow.Movie()

	if !flow.Editable() {
		// Read-only rendering for non-admin roles.
		render.MovieDetail(out, movie)
		if cfg.text != "" {
			return oops.Code("REVIEW_FORBIDDEN").
				Errorf("only admin accounts can edit reviews")
		}
		return nil
	}

	text := cfg.text
	if text == "" {
		if a.noInput {
			return oops.Code("REVIEW_INPUT").Errorf("--text is required with --no-input")
		}
		if movie.AdminReview != "" {
			fmt.Fprintf(out, "Current review:\n%s\n\n", movie.AdminReview)
		}
		cmd.Println("Enter the new review, finish with an empty line:")
		var err error
		text, err = readReviewText(a)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			cmd.Println("No text entered, review unchanged.")
			return nil
		}
	}

	if err := flow.Submit(cmd.Context(), text); err != nil {
		if errors.Is(err, review.ErrSessionExpired) {
			cmd.Println("Your session has expired and has been cleared. Run 'magicstream login' and try again.")
		}
		return err
	}

	updated, _ := flow.Movie()
	cmd.Println("Review updated.")
	render.MovieDetail(out, updated)
	return nil
}

// readReviewText reads lines until the first empty one.
func readReviewText(a *app) (string, error) {
	scanner := bufio.NewScanner(a.stdin)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", oops.Code("REVIEW_INPUT").Wrapf(err, "failed to read review text")
	}
	return strings.Join(lines, "\n"), nil
}

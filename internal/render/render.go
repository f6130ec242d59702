// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package render writes human-readable views of catalog and session data.
// Pure presentation glue: it never fetches, never mutates.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/session"
)

// MovieTable writes a one-line-per-movie listing.
func MovieTable(w io.Writer, movies []api.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "There are currently no movies available!")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMDB ID\tTITLE\tGENRES\tRANKING")
	for _, m := range movies {
		ranking := "-"
		if m.Ranking != nil && m.Ranking.Name != "" {
			ranking = m.Ranking.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.ImdbID, m.Title, strings.Join(m.Genres, ", "), ranking)
	}
	tw.Flush()
}

// MovieDetail writes the full view of one movie.
func MovieDetail(w io.Writer, m api.Movie) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", m.Title)
	fmt.Fprintf(tw, "IMDB ID:\t%s\n", m.ImdbID)
	if len(m.Genres) > 0 {
		fmt.Fprintf(tw, "Genres:\t%s\n", strings.Join(m.Genres, ", "))
	}
	if m.PosterPath != "" {
		fmt.Fprintf(tw, "Poster:\t%s\n", m.PosterPath)
	}
	if m.YoutubeID != "" {
		fmt.Fprintf(tw, "Video:\thttps://www.youtube.com/watch?v=%s\n", m.YoutubeID)
	}
	if m.Ranking != nil && m.Ranking.Name != "" {
		fmt.Fprintf(tw, "Ranking:\t%s\n", m.Ranking.Name)
	}
	tw.Flush()

	if m.AdminReview != "" {
		fmt.Fprintf(w, "\nAdmin review:\n%s\n", m.AdminReview)
	}
}

// SessionStatus writes the whoami view.
func SessionStatus(w io.Writer, sess session.Session, present bool) {
	if !present {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "Logged in as %s (%s)\n", sess.UserID, sess.Role)
}

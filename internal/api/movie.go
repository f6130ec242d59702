// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package api

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Ranking is the sentiment ranking the service derives from an admin
// review. Movies without a review have no ranking at all, so the field
// is optional on Movie rather than zero-valued.
type Ranking struct {
	Name  string `json:"ranking_name"`
	Value int    `json:"ranking_value"`
}

// Movie is the catalog entity served by the MagicStream service.
type Movie struct {
	ID          string   `json:"_id,omitempty"`
	ImdbID      string   `json:"imdb_id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path,omitempty"`
	YoutubeID   string   `json:"youtube_id,omitempty"`
	Genres      []string `json:"genre,omitempty"`
	AdminReview string   `json:"admin_review,omitempty"`
	Ranking     *Ranking `json:"ranking,omitempty"`
}

// ReviewUpdate is the partial response of the update-review operation.
// Fields are pointers so "server did not return this field" is
// distinguishable from "server returned an empty value".
type ReviewUpdate struct {
	AdminReview *string `json:"admin_review"`
	RankingName *string `json:"ranking_name"`
}

// ApplyReviewUpdate merges the server's authoritative response into the
// movie: only the fields the server actually returned are applied, and
// everything else on the previously loaded record stays untouched. A
// returned ranking name on a movie without a ranking creates one; the
// ranking value is owned by the server and never recomputed locally.
func (m *Movie) ApplyReviewUpdate(u ReviewUpdate) {
	if u.AdminReview != nil {
		m.AdminReview = *u.AdminReview
	}
	if u.RankingName != nil {
		if m.Ranking == nil {
			m.Ranking = &Ranking{}
		}
		m.Ranking.Name = *u.RankingName
	}
}

// FilterByGenre returns the movies with at least one genre matching the
// glob pattern, case-insensitively. An empty pattern matches everything.
func FilterByGenre(movies []Movie, pattern string) ([]Movie, error) {
	if pattern == "" {
		return movies, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, oops.Code("GENRE_PATTERN_INVALID").
			With("pattern", pattern).
			Wrapf(err, "invalid genre pattern")
	}

	var out []Movie
	for _, m := range movies {
		for _, genre := range m.Genres {
			if g.Match(strings.ToLower(genre)) {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/pkg/errutil"
)

func strptr(s string) *string { return &s }

func TestApplyReviewUpdate_MergesOnlyReturnedFields(t *testing.T) {
	movie := api.Movie{
		Title:       "X",
		AdminReview: "old",
		Ranking:     &api.Ranking{Name: "B", Value: 2},
	}

	movie.ApplyReviewUpdate(api.ReviewUpdate{
		AdminReview: strptr("new"),
		RankingName: strptr("A"),
	})

	assert.Equal(t, "X", movie.Title, "unrelated fields untouched")
	assert.Equal(t, "new", movie.AdminReview)
	assert.Equal(t, "A", movie.Ranking.Name)
	assert.Equal(t, 2, movie.Ranking.Value, "ranking value never recomputed locally")
}

func TestApplyReviewUpdate_AbsentFieldsKeepLocalState(t *testing.T) {
	movie := api.Movie{
		AdminReview: "old",
		Ranking:     &api.Ranking{Name: "B", Value: 2},
	}

	movie.ApplyReviewUpdate(api.ReviewUpdate{})

	assert.Equal(t, "old", movie.AdminReview)
	assert.Equal(t, "B", movie.Ranking.Name)
}

func TestApplyReviewUpdate_CreatesRankingWhenMissing(t *testing.T) {
	movie := api.Movie{AdminReview: "old"}

	movie.ApplyReviewUpdate(api.ReviewUpdate{
		AdminReview: strptr("great film"),
		RankingName: strptr("Magic"),
	})

	require.NotNil(t, movie.Ranking)
	assert.Equal(t, "Magic", movie.Ranking.Name)
	assert.Zero(t, movie.Ranking.Value)
}

func TestReviewUpdate_DistinguishesAbsentFromEmpty(t *testing.T) {
	var absent api.ReviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.Nil(t, absent.AdminReview)

	var empty api.ReviewUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"admin_review":""}`), &empty))
	require.NotNil(t, empty.AdminReview)
	assert.Empty(t, *empty.AdminReview)
}

func TestMovie_WireShape(t *testing.T) {
	raw := `{
		"_id": "64b",
		"imdb_id": "tt0078748",
		"title": "Alien",
		"poster_path": "https://img/alien.jpg",
		"youtube_id": "jQ5lPt9edzQ",
		"genre": ["Horror", "Sci-Fi"],
		"admin_review": "a classic",
		"ranking": {"ranking_name": "Magic", "ranking_value": 1}
	}`

	var movie api.Movie
	require.NoError(t, json.Unmarshal([]byte(raw), &movie))

	assert.Equal(t, "tt0078748", movie.ImdbID)
	assert.Equal(t, []string{"Horror", "Sci-Fi"}, movie.Genres)
	require.NotNil(t, movie.Ranking)
	assert.Equal(t, "Magic", movie.Ranking.Name)
	assert.Equal(t, 1, movie.Ranking.Value)
}

func TestMovie_RankingAbsent(t *testing.T) {
	var movie api.Movie
	require.NoError(t, json.Unmarshal([]byte(`{"imdb_id":"tt1","title":"New"}`), &movie))
	assert.Nil(t, movie.Ranking)
}

func TestFilterByGenre(t *testing.T) {
	movies := []api.Movie{
		{Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}},
		{Title: "Heat", Genres: []string{"Crime", "Drama"}},
		{Title: "Moon", Genres: []string{"Sci-Fi"}},
	}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "exact", pattern: "Crime", want: []string{"Heat"}},
		{name: "case insensitive", pattern: "crime", want: []string{"Heat"}},
		{name: "glob", pattern: "sci*", want: []string{"Alien", "Moon"}},
		{name: "no match", pattern: "Western", want: nil},
		{name: "empty matches all", pattern: "", want: []string{"Alien", "Heat", "Moon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := api.FilterByGenre(movies, tt.pattern)
			require.NoError(t, err)
			var titles []string
			for _, m := range got {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestFilterByGenre_InvalidPattern(t *testing.T) {
	_, err := api.FilterByGenre(nil, "[")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "GENRE_PATTERN_INVALID")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/session"
	"github.com/magicstream/magicstream/internal/transport"
	"github.com/magicstream/magicstream/pkg/errutil"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tc, err := transport.NewClient(srv.URL)
	require.NoError(t, err)
	return api.NewClient(tc, nil)
}

func TestLogin_MapsUserResponseToSession(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@magicstream.io", body["email"])
		assert.Equal(t, "hunter22", body["password"])

		// The service returns a full user record; only session fields matter.
		_, _ = w.Write([]byte(`{
			"user_id": "u-42",
			"first_name": "Ada",
			"last_name": "Lovelace",
			"email": "admin@magicstream.io",
			"role": "ADMIN",
			"token": "jwt-token",
			"refresh_token": "refresh"
		}`))
	}))

	sess, err := c.Login(context.Background(), "admin@magicstream.io", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, session.Session{UserID: "u-42", Role: session.RoleAdmin, Token: "jwt-token"}, sess)
}

func TestLogin_IncompleteResponseRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": "u-42", "role": "ADMIN"}`))
	}))

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "LOGIN_RESPONSE_INCOMPLETE")
}

func TestLogin_RequiresCredentials(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.Login(context.Background(), "", "pw")
	errutil.AssertErrorCode(t, err, "LOGIN_INPUT")
}

func TestGetMovie_PathAndDecoding(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/tt0078748", r.URL.Path)
		_, _ = w.Write([]byte(`{"imdb_id":"tt0078748","title":"Alien"}`))
	}))

	movie, err := c.GetMovie(context.Background(), "tt0078748")
	require.NoError(t, err)
	assert.Equal(t, "Alien", movie.Title)
}

func TestGetMovie_EmptyID(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.GetMovie(context.Background(), "")
	errutil.AssertErrorCode(t, err, "MOVIE_ID_REQUIRED")
}

func TestListMovies(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies", r.URL.Path)
		_, _ = w.Write([]byte(`[{"title":"Alien"},{"title":"Heat"}]`))
	}))

	movies, err := c.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestRecommended(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommended-movies", r.URL.Path)
		_, _ = w.Write([]byte(`[{"title":"Moon"}]`))
	}))

	movies, err := c.Recommended(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Moon", movies[0].Title)
}

func TestUpdateReview_SendsPatchAndReturnsPartial(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/update-review/tt0078748", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a new take", body["admin_review"])

		_, _ = w.Write([]byte(`{"admin_review":"a new take","ranking_name":"Magic"}`))
	}))

	update, err := c.UpdateReview(context.Background(), "tt0078748", "a new take")
	require.NoError(t, err)
	require.NotNil(t, update.AdminReview)
	assert.Equal(t, "a new take", *update.AdminReview)
	require.NotNil(t, update.RankingName)
	assert.Equal(t, "Magic", *update.RankingName)
}

func TestUpdateReview_SurfacesStatusErrors(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.UpdateReview(context.Background(), "tt1", "text")
	require.Error(t, err)
	assert.True(t, transport.IsUnauthorized(err))
}

func TestLogout(t *testing.T) {
	var called bool
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/logout", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Successfully logged out"}`))
	}))

	require.NoError(t, c.Logout(context.Background()))
	assert.True(t, called)
}

func TestRegister(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "USER", body["role"])
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.Register(context.Background(), api.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@magicstream.io",
		Password:  "secret",
		Role:      "USER",
	})
	require.NoError(t, err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package api is the typed client for the MagicStream movie service.
//
// It speaks the service's fixed HTTP contract over internal/transport
// and translates wire records into domain values. Whether a call goes
// out authenticated is decided entirely by the transport's attached
// Authenticator; this package never handles credentials itself.
package api

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/samber/oops"

	"github.com/magicstream/magicstream/internal/session"
	"github.com/magicstream/magicstream/internal/transport"
)

// Client exposes the service operations.
type Client struct {
	http   *transport.Client
	logger *slog.Logger
}

// NewClient wraps a transport client. A nil logger falls back to the
// slog default.
func NewClient(http *transport.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: http, logger: logger}
}

// userResponse is the login response. The service returns more fields
// (names, email, favourite genres, refresh token); the client keeps only
// what the session needs.
type userResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Genre is a favourite-genre entry on a user account.
type Genre struct {
	GenreID   int    `json:"genre_id"`
	GenreName string `json:"genre_name"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Role            string  `json:"role"`
	FavouriteGenres []Genre `json:"favourite_genres"`
}

// ListMovies fetches the public movie catalog.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.http.Get(ctx, "/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Recommended fetches the personalized movie list. Requires a session.
func (c *Client) Recommended(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.http.Get(ctx, "/recommended-movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches one movie by its IMDB identifier. Requires a session.
func (c *Client) GetMovie(ctx context.Context, imdbID string) (Movie, error) {
	if imdbID == "" {
		return Movie{}, oops.Code("MOVIE_ID_REQUIRED").Errorf("imdb id cannot be empty")
	}
	var movie Movie
	if err := c.http.Get(ctx, "/movie/"+url.PathEscape(imdbID), &movie); err != nil {
		return Movie{}, err
	}
	return movie, nil
}

// Login authenticates and returns the resulting session value. The
// caller decides whether to commit it to the session store.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	if email == "" || password == "" {
		return session.Session{}, oops.Code("LOGIN_INPUT").
			Errorf("email and password are required")
	}

	var user userResponse
	if err := c.http.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &user); err != nil {
		return session.Session{}, err
	}

	sess := session.Session{
		UserID: user.UserID,
		Role:   session.Role(user.Role),
		Token:  user.Token,
	}
	if !sess.Valid() {
		return session.Session{}, oops.Code("LOGIN_RESPONSE_INCOMPLETE").
			With("user_id", user.UserID).
			With("role", user.Role).
			Errorf("login response missing session fields")
	}
	c.logger.Debug("login succeeded", "user_id", sess.UserID, "role", string(sess.Role))
	return sess, nil
}

// Logout invalidates the credential on the server side. The local
// session is cleared by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.http.Post(ctx, "/logout", nil, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.http.Post(ctx, "/register", req, nil)
}

// UpdateReview submits the edited review text for a movie and returns
// the service's partial response. ADMIN-only on the server side; a 401
// here means the held credential is no longer valid.
func (c *Client) UpdateReview(ctx context.Context, imdbID, text string) (ReviewUpdate, error) {
	if imdbID == "" {
		return ReviewUpdate{}, oops.Code("MOVIE_ID_REQUIRED").Errorf("imdb id cannot be empty")
	}

	body := struct {
		AdminReview string `json:"admin_review"`
	}{AdminReview: text}

	var update ReviewUpdate
	if err := c.http.Patch(ctx, "/update-review/"+url.PathEscape(imdbID), body, &update); err != nil {
		return ReviewUpdate{}, err
	}
	return update, nil
}

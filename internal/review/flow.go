// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package review implements the admin review submission flow.
//
// One Flow serves one movie: Load fetches the record through the
// authenticated client, Editable decides the affordance from the current
// session role, and Submit persists an edit. Submit is the single place
// in the client where an authorization failure changes session state: a
// 401 on the write means the held credential is no longer valid, so the
// flow clears the session store (logical logout) before surfacing the
// condition. Every other failure is reported without touching the
// session so typed input is never thrown away over a transient error.
package review

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/magicstream/magicstream/internal/api"
	"github.com/magicstream/magicstream/internal/session"
	"github.com/magicstream/magicstream/internal/transport"
	"github.com/magicstream/magicstream/pkg/errutil"
)

// Service is the slice of the API client the flow needs.
// *api.Client satisfies it.
type Service interface {
	GetMovie(ctx context.Context, imdbID string) (api.Movie, error)
	UpdateReview(ctx context.Context, imdbID, text string) (api.ReviewUpdate, error)
}

// SessionControl is the slice of the session store the flow needs:
// reading the role for the UI affordance and forcing logout on 401.
// *session.Store satisfies it.
type SessionControl interface {
	Current() (session.Session, bool)
	Clear()
}

// Flow drives viewing and editing the admin review of a single movie.
type Flow struct {
	svc      Service
	sessions SessionControl
	logger   *slog.Logger

	imdbID string
	movie  *api.Movie
}

// NewFlow creates a flow. A nil logger falls back to the slog default.
func NewFlow(svc Service, sessions SessionControl, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{svc: svc, sessions: sessions, logger: logger}
}

// Load fetches the movie and makes it the flow's working state. Submit
// is only available once Load has succeeded: the edit form cannot exist
// before the record it edits.
func (f *Flow) Load(ctx context.Context, imdbID string) error {
	movie, err := f.svc.GetMovie(ctx, imdbID)
	if err != nil {
		errutil.LogError(f.logger, "failed to fetch movie", err)
		return err
	}
	f.imdbID = imdbID
	f.movie = &movie
	return nil
}

// Movie returns the currently loaded movie, if any.
func (f *Flow) Movie() (api.Movie, bool) {
	if f.movie == nil {
		return api.Movie{}, false
	}
	return *f.movie, true
}

// Editable reports whether the current session may edit the review.
// Only the ADMIN role sees the edit affordance; everyone else, including
// logged-out users, gets the read-only rendering.
func (f *Flow) Editable() bool {
	sess, present := f.sessions.Current()
	return present && sess.IsAdmin()
}

// ErrSessionExpired marks a submission rejected with 401: the session
// has been invalidated locally and the user must log in again.
var ErrSessionExpired = oops.Code("SESSION_EXPIRED").
	Errorf("session is no longer valid, please log in again")

// Submit sends the edited review text and merges the service's partial
// response into the loaded movie. Only the fields the server returned
// are applied; the rest of the record keeps its previously loaded state.
//
// On 401 the session store is cleared before the error surfaces. The
// merge target is flow-local state, so a submission racing a logout can
// never write session data back: the cleared session stays cleared.
func (f *Flow) Submit(ctx context.Context, text string) error {
	if f.movie == nil {
		return oops.Code("REVIEW_NOT_LOADED").
			Errorf("submit requires a loaded movie")
	}

	update, err := f.svc.UpdateReview(ctx, f.imdbID, text)
	if err != nil {
		if transport.IsUnauthorized(err) {
			f.logger.Warn("review submission unauthorized, clearing session",
				"imdb_id", f.imdbID,
			)
			f.sessions.Clear()
			return ErrSessionExpired
		}
		errutil.LogError(f.logger, "failed to update review", err)
		return err
	}

	f.movie.ApplyReviewUpdate(update)
	return nil
}

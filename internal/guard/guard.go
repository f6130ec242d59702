// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package guard gates navigation to protected destinations on session state.
//
// A guard evaluation lands in one of three states. PENDING means the
// session store has not finished hydrating, and deliberately resolves to
// neither outcome: treating "not yet loaded" as "not logged in" is the
// defect this package exists to prevent. AUTHORIZED admits the
// destination. UNAUTHORIZED produces a redirect to the login destination
// that carries the originally requested destination, so the login flow
// can return there afterwards instead of leaving the blocked attempt
// behind.
package guard

import (
	"context"

	"github.com/samber/oops"

	"github.com/magicstream/magicstream/internal/session"
)

// LoginDestination is where unauthorized navigations are redirected.
const LoginDestination = "login"

// State is the outcome of a guard evaluation.
type State int

// Guard states.
const (
	// StatePending means session hydration has not completed yet.
	StatePending State = iota
	// StateAuthorized admits the protected destination.
	StateAuthorized
	// StateUnauthorized redirects to the login destination.
	StateUnauthorized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Redirect sends the user to login, remembering where they were headed.
type Redirect struct {
	// To is the login destination.
	To string
	// From is the destination the user originally requested.
	From string
}

// Result is a resolved guard evaluation. Session is populated only when
// authorized; Redirect only when unauthorized.
type Result struct {
	State    State
	Session  session.Session
	Redirect *Redirect
}

// SessionReader is the view of the session store the guard needs.
// *session.Store satisfies it.
type SessionReader interface {
	Initializing() bool
	Current() (session.Session, bool)
	Subscribe(fn func(sess session.Session, present bool)) (cancel func())
}

// Evaluate resolves the guard against the store's current state. While
// the store is still hydrating the result is PENDING, never a redirect.
func Evaluate(store SessionReader, from string) Result {
	if store.Initializing() {
		return Result{State: StatePending}
	}
	if sess, present := store.Current(); present {
		return Result{State: StateAuthorized, Session: sess}
	}
	return Result{
		State:    StateUnauthorized,
		Redirect: &Redirect{To: LoginDestination, From: from},
	}
}

func (r Result) resolved() bool {
	return r.State != StatePending
}

// Wait blocks until the store leaves initialization and returns the
// resolved evaluation. The PENDING state is never visible to callers of
// Wait; it exists for consumers that poll Evaluate directly.
func Wait(ctx context.Context, store SessionReader, from string) (Result, error) {
	if res := Evaluate(store, from); res.resolved() {
		return res, nil
	}

	notify := make(chan struct{}, 1)
	cancel := store.Subscribe(func(session.Session, bool) {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for {
		// Re-check after subscribing: initialization may have completed
		// between the first evaluation and the registration.
		if res := Evaluate(store, from); res.resolved() {
			return res, nil
		}
		select {
		case <-notify:
		case <-ctx.Done():
			return Result{State: StatePending}, oops.Code("GUARD_WAIT_CANCELED").
				With("from", from).
				Wrapf(ctx.Err(), "session hydration did not complete")
		}
	}
}

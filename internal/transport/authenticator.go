// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package transport

import (
	"net/http"
	"sync"
)

// TokenSource supplies the current bearer credential, if any. It is
// consulted at request time, never captured at construction, so a login
// or logout between requests takes effect immediately.
// *session.Store satisfies this interface.
type TokenSource interface {
	Token() (token string, ok bool)
}

// Authenticator decorates a Client's transport so every outbound request
// carries the current session credential as an Authorization bearer
// header. Requests made while no session is present go out unauthenticated.
//
// Attach and Detach form an explicit lifecycle: at most one live
// registration exists per Authenticator no matter how many times Attach
// runs, and Detach restores the transport the registration replaced. The
// Authenticator only shapes requests; it never interprets responses or
// touches the session (401 policy belongs to callers).
type Authenticator struct {
	client *Client
	source TokenSource

	mu       sync.Mutex
	attached bool
	active   *bearerRoundTripper
}

// NewAuthenticator creates an authenticator for the given client and
// credential source. It is inert until Attach is called.
func NewAuthenticator(client *Client, source TokenSource) *Authenticator {
	return &Authenticator{
		client: client,
		source: source,
	}
}

// Attach registers the bearer decoration on the client. Calling Attach
// again while attached is a no-op: registrations never stack, so headers
// are never attached twice.
func (a *Authenticator) Attach() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.attached {
		return
	}

	a.client.mu.Lock()
	rt := &bearerRoundTripper{
		source: a.source,
		next:   a.client.roundTripper(),
	}
	a.client.setRoundTripper(rt)
	a.client.mu.Unlock()

	a.active = rt
	a.attached = true
}

// Detach removes the registration and restores the transport it wrapped.
// Calling Detach while not attached is a no-op.
func (a *Authenticator) Detach() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.attached {
		return
	}

	a.client.mu.Lock()
	// Only unwind if our registration is still the outermost layer;
	// otherwise leave the stack to the owner that wrapped us.
	if a.client.http.Transport == a.active {
		a.client.setRoundTripper(a.active.next)
	}
	a.client.mu.Unlock()

	a.active = nil
	a.attached = false
}

// Attached reports whether a registration is currently live.
func (a *Authenticator) Attached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attached
}

// bearerRoundTripper is the installed decoration.
type bearerRoundTripper struct {
	source TokenSource
	next   http.RoundTripper
}

// RoundTrip attaches the current credential and delegates. The request is
// cloned first: RoundTrippers must not mutate the caller's request.
func (rt *bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := rt.source.Token(); ok {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		req = clone
	}
	//nolint:wrapcheck // RoundTripper contract passes transport errors through
	return rt.next.RoundTrip(req)
}

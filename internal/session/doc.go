// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package session owns the client's authentication state.
//
// A Session is either absent (logged out) or fully populated with user
// ID, role, and bearer token. The Store is the sole writer of that state:
// the login flow sets it, logout and forced invalidation clear it, and
// every transition is written through to a durable JSON record so the
// next process start can hydrate where the last one left off.
//
// Consumers never copy session state into their own variables. They hold
// the one Store and read it at the moment of use, or subscribe to learn
// about transitions as they commit.
package session

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

// Package transport wraps the HTTP client used for all service calls.
//
// Client exposes the usual verb surface (Get, Post, Patch, Delete) bound
// to the configured base address. Authenticator is the one cross-cutting
// piece: attached to a Client, it injects the current session's bearer
// token into every outbound request, reading the credential at request
// time from a TokenSource. Its Attach/Detach lifecycle guarantees a
// single live registration, so repeated setup/teardown cycles can never
// stack header injection.
package transport

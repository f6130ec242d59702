// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response, surfaced with whatever body the
// service sent so callers can report it. The transport never swallows
// these; policy (such as forced logout on 401) lives with callers.
type StatusError struct {
	Status    int
	Body      []byte
	RequestID string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %d %s", e.Status, http.StatusText(e.Status))
}

// StatusOf extracts the HTTP status from err, or 0 if err does not carry one.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsUnauthorized reports whether err is an HTTP 401 response.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

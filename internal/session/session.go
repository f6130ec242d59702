// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package session

import "github.com/samber/oops"

// Role is the authorization role carried by a session.
type Role string

// Roles issued by the MagicStream service.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Session is the in-memory representation of the logged-in identity.
// A session is either absent or fully populated; partial sessions are
// rejected at the store boundary and never observable by consumers.
type Session struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Token  string `json:"token"`
}

// Valid reports whether the session is fully populated.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Role != "" && s.Token != ""
}

// IsAdmin reports whether the session carries the ADMIN role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) validate() error {
	if s.UserID == "" {
		return oops.Code("SESSION_INVALID").Errorf("user ID cannot be empty")
	}
	if s.Role != RoleAdmin && s.Role != RoleUser {
		return oops.Code("SESSION_INVALID").
			With("role", string(s.Role)).
			Errorf("role must be ADMIN or USER")
	}
	if s.Token == "" {
		return oops.Code("SESSION_INVALID").Errorf("token cannot be empty")
	}
	return nil
}

// Package models defines the client-side data model: the cached user session
// and the wire shapes exchanged with the EcoSync API.
package models

// Roles known to the platform.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session identifies the signed-in user and carries its bearer token.
// It is persisted as a single JSON value in the local state store and
// mirrored (copied, never shared) into coordinator snapshots.
type Session struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Clone returns an independent copy, or nil for a nil session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

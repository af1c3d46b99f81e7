package domain

import "time"

// Session binds an opaque bearer token to a user id and role for a fixed
// TTL from issuance. Token carries the raw value only in memory; the store
// keeps a hash.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

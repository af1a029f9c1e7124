package entity

import "time"

// Session is proof of a prior successful login.
// Its expiry is fixed at creation; it is never renewed.
type Session struct {
	Token     string    // 64-character hex string (32 random bytes)
	UserID    string    // Owning user's ID
	CreatedAt time.Time // Session creation time
	ExpiresAt time.Time // Session expiration time
}

// IsValidAt reports whether the session can still be used at the given instant.
// The expiry instant itself is already invalid.
func (s *Session) IsValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

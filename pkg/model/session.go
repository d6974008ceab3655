package model

import "time"

// Session is the server-held authentication state keyed by the session
// cookie. Profile fields are a denormalized copy taken at login time; the
// user document remains the source of truth.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Usertype    string    `json:"usertype"`
	Name        string    `json:"name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the fixed TTL has elapsed. Expiry is measured
// from creation and is never extended by activity.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

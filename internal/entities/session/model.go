package session

import "time"

type Session struct {
	Id        string    `db:"id"`
	AdminId   int       `db:"admin_id"`
	Remember  bool      `db:"remember"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

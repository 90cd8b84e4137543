package models

import "time"

// RefreshToken is an opaque rotation token bound to one account.
type RefreshToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

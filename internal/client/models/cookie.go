package models

import "time"

type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
)

// Cookie is one entry of the on-device cookie jar.
type Cookie struct {
	Name      string
	Value     string
	ExpiresAt time.Time
	SameSite  SameSite
}

// Expired reports whether c is past its expiry at now.
func (c *Cookie) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

package models

import "time"

// Favorite is one row of the favorites table. UserID is the owning actor:
// either a registered user id or an anonymous id.
type Favorite struct {
	ID        int64
	UserID    string
	PokemonID int
	Name      string
	URL       string
	CreatedAt time.Time
}

// Package models defines client-side data types.
package models

import "time"

// FavoriteEntry is one favorite Pokémon. Name is the de-facto key. ID,
// UserID and CreatedAt are assigned by the backend and stay empty for the
// on-device store.
type FavoriteEntry struct {
	ID        int64      `json:"id,omitempty"`
	PokemonID int        `json:"pokemonId"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	UserID    string     `json:"userId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

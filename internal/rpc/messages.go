package rpc

import "time"

// Favorite is the wire form of one favorites row.
type Favorite struct {
	ID        int64      `json:"id,omitempty"`
	PokemonID int        `json:"pokemon_id"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	UserID    string     `json:"user_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// SignUpRequest creates an account. TempUserID carries the caller's anonymous
// id so the account remembers where its favorites came from.
type SignUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TempUserID string `json:"temp_user_id,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by every call that opens or renews a session.
type AuthResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type AddFavoriteRequest struct {
	ActorID  string   `json:"actor_id"`
	Favorite Favorite `json:"favorite"`
}

type FavoriteResponse struct {
	Favorite Favorite `json:"favorite"`
}

type RemoveFavoriteRequest struct {
	ActorID string `json:"actor_id"`
	Name    string `json:"name"`
}

type RemoveFavoriteResponse struct {
	Removed int64 `json:"removed"`
}

type GetFavoriteRequest struct {
	ActorID string `json:"actor_id"`
	Name    string `json:"name"`
}

// ListFavoritesRequest selects the inclusive row range [From, To] of the
// actor's favorites, newest first. A negative To selects every row from From on.
type ListFavoritesRequest struct {
	ActorID string `json:"actor_id"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

type ListFavoritesResponse struct {
	Favorites []Favorite `json:"favorites"`
	Total     int        `json:"total"`
}

type MigrateFavoritesRequest struct {
	TempUserID string `json:"temp_user_id"`
	UserID     string `json:"user_id"`
}

type MigrateFavoritesResponse struct {
	Moved int64 `json:"moved"`
}

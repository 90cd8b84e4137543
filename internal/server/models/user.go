// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. TempUserID is the anonymous id the account
// was created from, if any.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	TempUserID   string
	CreatedAt    time.Time
}

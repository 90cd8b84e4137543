// Package identity decides who the current actor is: the signed-in account
// or a durable anonymous visitor id kept in the on-device cookie jar.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/client/repositories/cookies"
	"github.com/google/uuid"
)

const (
	TempUserIDCookie    = "pokodex_temp_user_id"
	CookieConsentCookie = "pokodex_cookie_consent"

	CookieTTL = 30 * 24 * time.Hour
)

// Sessions reports the signed-in account id, or "" when nobody is signed in.
type Sessions interface {
	UserID(ctx context.Context) (string, error)
}

type Resolver struct {
	jar      cookies.Repository
	sessions Sessions

	now   func() time.Time
	newID func() string
}

func NewResolver(jar cookies.Repository, sessions Sessions) *Resolver {
	return &Resolver{
		jar:      jar,
		sessions: sessions,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CurrentActorID returns the account id when a session exists, otherwise the
// anonymous id, which is created and persisted on first read.
func (r *Resolver) CurrentActorID(ctx context.Context) (string, error) {
	if r.sessions != nil {
		id, err := r.sessions.UserID(ctx)
		if err != nil {
			return "", fmt.Errorf("session: %w", err)
		}
		if id != "" {
			return id, nil
		}
	}
	return r.AnonymousID(ctx)
}

// AnonymousID is get-or-create. The cookie is written regardless of consent.
func (r *Resolver) AnonymousID(ctx context.Context) (string, error) {
	c, err := r.jar.Get(ctx, TempUserIDCookie)
	if err != nil {
		return "", err
	}
	if c != nil && c.Value != "" {
		return c.Value, nil
	}

	id := r.newID()
	if err := r.set(ctx, TempUserIDCookie, id); err != nil {
		return "", err
	}
	return id, nil
}

// PeekAnonymousID returns the anonymous id without creating one.
func (r *Resolver) PeekAnonymousID(ctx context.Context) (string, error) {
	c, err := r.jar.Get(ctx, TempUserIDCookie)
	if err != nil || c == nil {
		return "", err
	}
	return c.Value, nil
}

func (r *Resolver) ClearAnonymousID(ctx context.Context) error {
	return r.jar.Delete(ctx, TempUserIDCookie)
}

// HasConsentForCookies is advisory; nothing blocks on it.
func (r *Resolver) HasConsentForCookies(ctx context.Context) (bool, error) {
	c, err := r.jar.Get(ctx, CookieConsentCookie)
	if err != nil {
		return false, err
	}
	return c != nil && c.Value == "true", nil
}

func (r *Resolver) SetConsent(ctx context.Context, consent bool) error {
	v := "false"
	if consent {
		v = "true"
	}
	return r.set(ctx, CookieConsentCookie, v)
}

func (r *Resolver) set(ctx context.Context, name, value string) error {
	return r.jar.Set(ctx, &models.Cookie{
		Name:      name,
		Value:     value,
		ExpiresAt: r.now().Add(CookieTTL),
		SameSite:  models.SameSiteStrict,
	})
}

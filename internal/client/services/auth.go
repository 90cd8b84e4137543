// Package services contains the client's application services. This file
// defines authentication: sign-up, sign-in and sign-out against the backend,
// the persisted session, and the one-time migration of anonymous favorites
// that follows every successful authentication.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pokodex/internal/client/client"
	"github.com/dmitrijs2005/pokodex/internal/client/favorites"
	"github.com/dmitrijs2005/pokodex/internal/logging"
)

const minPasswordLen = 6

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrNotSignedIn      = errors.New("not signed in")
)

// MigrationError reports that authentication succeeded but the anonymous
// favorites could not be moved. The session is open and the anonymous id is
// kept, so the next sign-in retries.
type MigrationError struct {
	TempUserID string
	UserID     string
	Err        error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("signed in, but favorites of %s were not migrated: %v", e.TempUserID, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// Identity is the part of the identity resolver authentication needs.
type Identity interface {
	AnonymousID(ctx context.Context) (string, error)
	PeekAnonymousID(ctx context.Context) (string, error)
	ClearAnonymousID(ctx context.Context) error
}

type AuthService struct {
	backend  client.Backend
	sessions *SessionStore
	identity Identity
	migrator favorites.Migrator
	logger   logging.Logger

	mu      sync.Mutex
	current *Session
}

func NewAuthService(backend client.Backend, sessions *SessionStore, identity Identity,
	migrator favorites.Migrator, logger logging.Logger) *AuthService {
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		identity: identity,
		migrator: migrator,
		logger:   logger.With("module", "auth"),
	}
}

// Restore loads a persisted session and hands its tokens to the backend.
func (a *AuthService) Restore(ctx context.Context) (*Session, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
	if s != nil {
		a.backend.SetTokens(s.AccessToken, s.RefreshToken)
	}
	return s, nil
}

// Session returns a copy of the current session, or nil.
func (a *AuthService) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	s := *a.current
	return &s
}

func (a *AuthService) IsAuthenticated() bool {
	return a.Session() != nil
}

// SignUp registers the account, remembering the anonymous id as its
// temp_user_id, and signs it in.
func (a *AuthService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}
	tempID, err := a.identity.AnonymousID(ctx)
	if err != nil {
		return nil, fmt.Errorf("anonymous id: %w", err)
	}

	userID, err := a.backend.SignUp(ctx, email, password, tempID)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return a.afterAuth(ctx, email, userID, tempID)
}

func (a *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, client.ErrUnauthorized
	}
	tempID, err := a.identity.PeekAnonymousID(ctx)
	if err != nil {
		return nil, fmt.Errorf("anonymous id: %w", err)
	}

	userID, err := a.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return a.afterAuth(ctx, email, userID, tempID)
}

// afterAuth persists the session and runs the migration exactly once. A
// migration failure is returned as *MigrationError alongside the session.
func (a *AuthService) afterAuth(ctx context.Context, email, userID, tempID string) (*Session, error) {
	access, refresh := a.backend.Tokens()
	s := &Session{UserID: userID, Email: email, AccessToken: access, RefreshToken: refresh}
	if err := a.sessions.Save(ctx, *s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
	a.logger.Info(ctx, "signed in", "user_id", userID)

	if tempID == "" || tempID == userID {
		return s, nil
	}
	n, err := a.migrator.Migrate(ctx, tempID, userID)
	if err != nil {
		a.logger.Error(ctx, "favorites migration failed", "temp_user_id", tempID, "user_id", userID, "error", err)
		return s, &MigrationError{TempUserID: tempID, UserID: userID, Err: err}
	}
	if err := a.identity.ClearAnonymousID(ctx); err != nil {
		a.logger.Warn(ctx, "clear anonymous id failed", "error", err)
	}
	a.logger.Info(ctx, "favorites migrated", "temp_user_id", tempID, "user_id", userID, "rows", n)
	return s, nil
}

// SignOut closes the session on the backend and forgets it locally. The
// local session is cleared even when the backend call fails.
func (a *AuthService) SignOut(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return ErrNotSignedIn
	}
	remoteErr := a.backend.SignOut(ctx)
	if remoteErr != nil {
		a.logger.Warn(ctx, "backend sign out failed", "error", remoteErr)
	}

	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// TokensRefreshed persists a pair the backend client refreshed on its own.
func (a *AuthService) TokensRefreshed(access, refresh string) {
	ctx := context.Background()
	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return
	}
	a.current.AccessToken, a.current.RefreshToken = access, refresh
	a.mu.Unlock()
	if err := a.sessions.SaveTokens(ctx, access, refresh); err != nil {
		a.logger.Error(ctx, "persist refreshed tokens failed", "error", err)
	}
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.backend.Ping(ctx)
}

func (a *AuthService) Close() error {
	return a.backend.Close()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) (string, error) {
	email = normalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", ErrPasswordTooShort
	}
	return email, nil
}

package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pokodex/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
)

const (
	sessionPrefix   = "session."
	keyUserID       = sessionPrefix + "user_id"
	keyEmail        = sessionPrefix + "email"
	keyAccessToken  = sessionPrefix + "access_token"
	keyRefreshToken = sessionPrefix + "refresh_token"
)

// Session is the signed-in account as persisted on the device.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

// SessionStore persists the session in the metadata table so a restarted
// client stays signed in. It also answers "who is signed in" for the
// identity resolver.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns nil when nobody is signed in.
func (s *SessionStore) Load(ctx context.Context) (*Session, error) {
	vals, err := metadata.NewSQLiteRepository(s.db).ListPrefix(ctx, sessionPrefix)
	if err != nil {
		return nil, err
	}
	if len(vals[keyUserID]) == 0 {
		return nil, nil
	}
	return &Session{
		UserID:       string(vals[keyUserID]),
		Email:        string(vals[keyEmail]),
		AccessToken:  string(vals[keyAccessToken]),
		RefreshToken: string(vals[keyRefreshToken]),
	}, nil
}

// Save writes every session key in one transaction.
func (s *SessionStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for k, v := range map[string]string{
			keyUserID:       sess.UserID,
			keyEmail:        sess.Email,
			keyAccessToken:  sess.AccessToken,
			keyRefreshToken: sess.RefreshToken,
		} {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveTokens replaces the token pair of the current session.
func (s *SessionStore) SaveTokens(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(access)); err != nil {
			return err
		}
		return repo.Set(ctx, keyRefreshToken, []byte(refresh))
	})
}

// Clear drops the session keys only; local favorites stay.
func (s *SessionStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).DeletePrefix(ctx, sessionPrefix)
}

// UserID returns "" when nobody is signed in.
func (s *SessionStore) UserID(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyUserID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

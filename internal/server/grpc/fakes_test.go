package grpc

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/logging"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
	"github.com/dmitrijs2005/pokodex/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUser struct {
	user   *models.User
	tokens *services.TokenPair
	err    error

	gotTemp    string
	signedOut  string
	refreshErr error
}

func (f *fakeUser) SignUp(ctx context.Context, email, password, tempUserID string) (*models.User, *services.TokenPair, error) {
	f.gotTemp = tempUserID
	return f.user, f.tokens, f.err
}

func (f *fakeUser) SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return f.user, f.tokens, f.err
}

func (f *fakeUser) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.tokens, f.refreshErr
}

func (f *fakeUser) SignOut(ctx context.Context, refreshToken string) error {
	f.signedOut = refreshToken
	return f.err
}

type fakeFavorites struct {
	err error

	callerID string
	actorID  string
	from, to int

	rows  []*models.Favorite
	total int
	moved int64
}

func (f *fakeFavorites) Add(ctx context.Context, callerID, actorID string, fav *models.Favorite) (*models.Favorite, error) {
	f.callerID, f.actorID = callerID, actorID
	if f.err != nil {
		return nil, f.err
	}
	out := *fav
	out.ID = 1
	out.UserID = actorID
	return &out, nil
}

func (f *fakeFavorites) Remove(ctx context.Context, callerID, actorID, name string) (int64, error) {
	f.callerID, f.actorID = callerID, actorID
	return 1, f.err
}

func (f *fakeFavorites) Get(ctx context.Context, callerID, actorID, name string) (*models.Favorite, error) {
	f.callerID, f.actorID = callerID, actorID
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[0], nil
}

func (f *fakeFavorites) List(ctx context.Context, callerID, actorID string, from, to int) ([]*models.Favorite, int, error) {
	f.callerID, f.actorID, f.from, f.to = callerID, actorID, from, to
	return f.rows, f.total, f.err
}

func (f *fakeFavorites) Migrate(ctx context.Context, callerID, tempUserID, userID string) (int64, error) {
	f.callerID = callerID
	return f.moved, f.err
}

package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQ = `(?s)^\s*INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	findQ   = `(?s)^\s*SELECT\s+user_id,\s*expires_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteQ = `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	expireQ = `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+expires_at\s*<\s*\$1\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs("user-123", "tok", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQ).
		WithArgs("user-123", "tok2", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Create(context.Background(), "user-123", "tok", 30*time.Minute))

	err := repo.Create(context.Background(), "user-123", "tok2", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	expires := time.Now().Add(10 * time.Minute)
	mock.ExpectQuery(findQ).WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-123", expires))
	mock.ExpectQuery(findQ).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(findQ).WithArgs("broken").WillReturnError(errors.New("db err"))

	got, err := repo.Find(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.ExpiresAt.Equal(expires))

	_, err = repo.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Find(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQ).WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("tok").WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), "tok"))
	require.Error(t, repo.Delete(context.Background(), "tok"))
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectExec(expireQ).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

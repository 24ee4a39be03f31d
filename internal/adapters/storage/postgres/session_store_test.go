package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"petcare-web/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*SessionStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionStore(sqlx.NewDb(db, "pgx")), mock
}

func TestSessionStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	q := regexp.QuoteMeta(`SELECT value FROM web_sessions WHERE sid = $1 AND key = $2`)

	mock.ExpectQuery(q).WithArgs("sid-1", "access_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok"))
	mock.ExpectQuery(q).WithArgs("sid-1", "view_mode").
		WillReturnError(sql.ErrNoRows)

	v, ok, err := s.Get(context.Background(), "sid-1", session.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	_, ok, err = s.Get(context.Background(), "sid-1", session.KeyViewMode)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_SetUpserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO web_sessions`)).
		WithArgs("sid-1", "redirect_after_login", "/my-clinics").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "sid-1", session.KeyRedirectAfterLogin, "/my-clinics"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_DeleteAndClear(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM web_sessions WHERE sid = $1 AND key IN ($2, $3)`)).
		WithArgs("sid-1", "access_token", "refresh_token").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM web_sessions WHERE sid = $1`)).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	ctx := context.Background()
	require.NoError(t, s.Delete(ctx, "sid-1", session.KeyAccessToken, session.KeyRefreshToken))
	require.NoError(t, s.Clear(ctx, "sid-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_EnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS web_sessions`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

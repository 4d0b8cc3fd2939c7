package session

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSessionRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_sessions")).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "remember", "created_at", "expires_at"}).
			AddRow("abc", 1, true, now, now.Add(time.Hour)))

	s, err := repo.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Id)
	assert.Equal(t, 1, s.AdminId)
	assert.True(t, s.Remember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_sessions")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "remember", "created_at", "expires_at"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admin_sessions WHERE id = $1")).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admin_sessions WHERE id = $1")).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "abc"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), ErrSessionNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admin_sessions WHERE expires_at <= $1")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSessionRepository_CreateFailure(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_sessions")).
		WillReturnError(errors.New("conn reset"))

	err := repo.Create(context.Background(), &Session{Id: "abc", AdminId: 1, CreatedAt: now, ExpiresAt: now})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

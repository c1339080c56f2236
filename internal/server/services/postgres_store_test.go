package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the services over the PostgreSQL repositories, with sqlmock
// standing in for the server.

const (
	insertAccountSQL = `^INSERT\s+INTO\s+accounts\b`
	accountByEmail   = `^SELECT .* FROM accounts\s+WHERE email = \$1$`
	accountExists    = `^SELECT EXISTS \(SELECT 1 FROM accounts WHERE id = \$1\)$`
	insertPostSQL    = `^INSERT\s+INTO\s+posts\b`
	postByID         = `(?s)^SELECT .* FROM posts\s+WHERE id = \$1`
)

var (
	accountCols = []string{"id", "username", "email", "password_digest", "bio", "created_at", "updated_at"}
	postCols    = []string{"id", "content", "author_id", "created_at", "updated_at"}
	stamp       = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

// captured records the string bound to a query argument.
type captured struct{ value string }

func (c *captured) Match(v driver.Value) bool {
	s, ok := v.(string)
	c.value = s
	return ok
}

func newPostgresStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, repomanager.RepositoryManager) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	require.NoError(t, err)
	return db, mock, rm
}

func TestPostgresStore_DuplicateEmailKeepsFirstAccount(t *testing.T) {
	db, mock, rm := newPostgresStore(t)
	ctx := context.Background()

	tokens, err := auth.NewTokenService([]byte("test-secret"), time.Hour, nil)
	require.NoError(t, err)
	svc, err := NewAccountService(db, rm, auth.NewHasher(fastArgon2), tokens)
	require.NoError(t, err)

	firstID, firstDigest := &captured{}, &captured{}
	mock.ExpectQuery(insertAccountSQL).
		WithArgs(firstID, "alice", "a@x.io", firstDigest, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(stamp, stamp))
	mock.ExpectQuery(insertAccountSQL).
		WithArgs(sqlmock.AnyArg(), "alice2", "a@x.io", sqlmock.AnyArg(), nil).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	first, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, firstID.value, first.AccountID)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice2", Email: "A@x.io ", Password: "pw2"})
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Contains(t, err.Error(), "email already taken")

	// the row under the email is still the first account with its own password
	for range 2 {
		mock.ExpectQuery(accountByEmail).WithArgs("a@x.io").
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow(firstID.value, "alice", "a@x.io", firstDigest.value, nil, stamp, stamp))
	}

	token, err := svc.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)
	id, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, id)

	_, err = svc.Login(ctx, "a@x.io", "pw2")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreatePostCommits(t *testing.T) {
	db, mock, rm := newPostgresStore(t)
	const author = "0b8f5f0e-3c5a-4a43-9d0c-5f1f2b0f7a11"

	mock.ExpectBegin()
	mock.ExpectQuery(accountExists).WithArgs(author).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(insertPostSQL).WithArgs(sqlmock.AnyArg(), "hello", author).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(stamp, stamp))
	mock.ExpectCommit()

	post, err := NewPostService(db, rm).Create(context.Background(), author, "hello")
	require.NoError(t, err)
	assert.Equal(t, author, post.AuthorID)
	assert.Equal(t, stamp, post.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MissingAuthorRollsBackWithoutInsert(t *testing.T) {
	db, mock, rm := newPostgresStore(t)
	const ghost = "5d6c1f7e-1111-4c2b-8a4e-000000000000"

	mock.ExpectBegin()
	mock.ExpectQuery(accountExists).WithArgs(ghost).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := NewPostService(db, rm).Create(context.Background(), ghost, "hello")
	require.ErrorIs(t, err, common.ErrNotFound)

	// an INSERT would have been an unexpected call
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MalformedIDsAreNotFound(t *testing.T) {
	db, mock, rm := newPostgresStore(t)
	svc := NewPostService(db, rm)
	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	mock.ExpectQuery(postByID).WithArgs("abc").WillReturnError(badUUID)

	_, err := svc.Get(context.Background(), "0b8f5f0e-3c5a-4a43-9d0c-5f1f2b0f7a11", "abc")
	assert.ErrorIs(t, err, common.ErrNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(accountExists).WithArgs("abc").WillReturnError(badUUID)
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), "abc", "hello")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetPostOfAnotherAuthor(t *testing.T) {
	db, mock, rm := newPostgresStore(t)
	svc := NewPostService(db, rm)
	const (
		owner    = "0b8f5f0e-3c5a-4a43-9d0c-5f1f2b0f7a11"
		stranger = "9a7e2c44-2f0b-4d5e-b1c3-7e8f9a0b1c2d"
		postID   = "c3d4e5f6-0000-4a1b-9c2d-3e4f5a6b7c8d"
	)

	for range 2 {
		mock.ExpectQuery(postByID).WithArgs(postID).
			WillReturnRows(sqlmock.NewRows(postCols).AddRow(postID, "mine", owner, stamp, stamp))
	}

	got, err := svc.Get(context.Background(), owner, postID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Content)

	_, err = svc.Get(context.Background(), stranger, postID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastArgon2 = auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type accountFixture struct {
	svc    *AccountService
	store  *memStore
	mgr    *fakeManager
	hasher *countingHasher
	tokens *auth.TokenService
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	db, _ := newSQLMockDB(t)

	store := newMemStore()
	mgr := &fakeManager{store: store}
	hasher := &countingHasher{PasswordHasher: auth.NewHasher(fastArgon2)}

	tokens, err := auth.NewTokenService([]byte("test-secret"), time.Hour, nil)
	require.NoError(t, err)

	svc, err := NewAccountService(db, mgr, hasher, tokens)
	require.NoError(t, err)

	return &accountFixture{svc: svc, store: store, mgr: mgr, hasher: hasher, tokens: tokens}
}

func strPtr(s string) *string { return &s }

func TestRegister_TokenIdentifiesNewAccount(t *testing.T) {
	f := newAccountFixture(t)

	reg, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.io", Password: "pw1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.AccountID)

	id, err := f.tokens.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.AccountID, id)

	stored := f.store.accounts[reg.AccountID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordDigest)
	assert.True(t, strings.HasPrefix(stored.PasswordDigest, "$argon2id$"))
}

func TestRegister_AliceScenario(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.io", Password: "pw1", Bio: strPtr("hello"),
	})
	require.NoError(t, err)

	token, err := f.svc.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)

	id, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, reg.AccountID, id)

	profile, err := f.svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "a@x.io", profile.Email)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "hello", *profile.Bio)

	b, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "argon2id")
}

func TestRegister_NormalizesEmail(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, RegisterInput{Username: " bob ", Email: "  Bob@Example.COM ", Password: "pw"})
	require.NoError(t, err)

	stored := f.store.accounts[reg.AccountID]
	assert.Equal(t, "bob", stored.Username)
	assert.Equal(t, "bob@example.com", stored.Email)

	_, err = f.svc.Login(ctx, "BOB@example.com", "pw")
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"missing username", RegisterInput{Email: "a@x.io", Password: "pw"}, "username"},
		{"long username", RegisterInput{Username: strings.Repeat("u", 51), Email: "a@x.io", Password: "pw"}, "username"},
		{"missing email", RegisterInput{Username: "u", Password: "pw"}, "email"},
		{"bad email", RegisterInput{Username: "u", Email: "not-an-email", Password: "pw"}, "email"},
		{"missing password", RegisterInput{Username: "u", Email: "a@x.io"}, "password"},
		{"long password", RegisterInput{Username: "u", Email: "a@x.io", Password: strings.Repeat("p", 257)}, "password"},
		{"long bio", RegisterInput{Username: "u", Email: "a@x.io", Password: "pw", Bio: strPtr(strings.Repeat("b", 501))}, "bio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture(t)

			_, err := f.svc.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
			assert.Empty(t, f.store.accounts)
		})
	}
}

func TestRegister_DuplicateEmailKeepsFirstAccount(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	first, err := f.svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, RegisterInput{Username: "alice2", Email: "a@x.io", Password: "pw2"})
	require.ErrorIs(t, err, common.ErrConflict)

	assert.Len(t, f.store.accounts, 1)

	token, err := f.svc.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)
	id, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, id)

	_, err = f.svc.Login(ctx, "a@x.io", "pw2")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRegister_StoreError(t *testing.T) {
	f := newAccountFixture(t)
	f.store.accountsErr = errors.New("db down")

	_, err := f.svc.Register(context.Background(), RegisterInput{Username: "u", Email: "a@x.io", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestLogin_UnifiedFailure(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw1"})
	require.NoError(t, err)
	f.hasher.verified = nil

	_, wrongPw := f.svc.Login(ctx, "a@x.io", "nope")
	_, unknown := f.svc.Login(ctx, "ghost@x.io", "nope")

	require.ErrorIs(t, wrongPw, common.ErrInvalidCredentials)
	require.ErrorIs(t, unknown, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())

	// both paths run exactly one verification, the unknown one against the dummy digest
	require.Len(t, f.hasher.verified, 2)
	assert.Equal(t, f.svc.dummyDigest, f.hasher.verified[1])
}

func TestLogin_EmptyInput(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Login(context.Background(), " ", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = f.svc.Login(context.Background(), "a@x.io", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_StoreError(t *testing.T) {
	f := newAccountFixture(t)
	f.store.accountsErr = errors.New("db down")

	_, err := f.svc.Login(context.Background(), "a@x.io", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("no entropy") }
func (failingHasher) Verify(string, string) bool { return false }

func TestNewAccountService_HasherError(t *testing.T) {
	db, _ := newSQLMockDB(t)

	_, err := NewAccountService(db, &fakeManager{store: newMemStore()}, failingHasher{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
}

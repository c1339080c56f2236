package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestPing_OK(t *testing.T) {
	s := newTestServer(&fakeAccounts{}, &fakePosts{})
	resp, err := s.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestRegister_OK(t *testing.T) {
	bio := "hi"
	a := &fakeAccounts{regResp: &services.Registration{AccountID: "acc-1", Token: "tok"}}
	s := newTestServer(a, &fakePosts{})

	resp, err := s.Register(context.Background(), &api.RegisterRequest{
		Username: "alice", Email: "a@x.io", Password: "pw1", Bio: &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, &api.RegisterResponse{AccountID: "acc-1", Token: "tok"}, resp)
	assert.Equal(t, services.RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw1", Bio: &bio}, a.regIn)
}

func TestRegister_Errors(t *testing.T) {
	for err, code := range map[error]codes.Code{
		common.ErrConflict:   codes.AlreadyExists,
		common.ErrValidation: codes.InvalidArgument,
		errors.New("db"):     codes.Internal,
	} {
		s := newTestServer(&fakeAccounts{regErr: err}, &fakePosts{})
		_, got := s.Register(context.Background(), &api.RegisterRequest{})
		assert.Equal(t, code, status.Code(got), err.Error())
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(&fakeAccounts{loginResp: "tok"}, &fakePosts{})
	resp, err := s.Login(context.Background(), &api.LoginRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)

	s = newTestServer(&fakeAccounts{loginErr: common.ErrInvalidCredentials}, &fakePosts{})
	_, err = s.Login(context.Background(), &api.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "authentication failed", status.Convert(err).Message())
}

func TestGetProfile(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &fakeAccounts{profileResp: &models.Profile{ID: "acc-1", Username: "alice", Email: "a@x.io", CreatedAt: created}}
	s := newTestServer(a, &fakePosts{})

	resp, err := s.GetProfile(auth.WithAccountID(context.Background(), "acc-1"), &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", a.profileID)
	assert.Equal(t, api.Profile{ID: "acc-1", Username: "alice", Email: "a@x.io", CreatedAt: created}, resp.Profile)

	_, err = s.GetProfile(context.Background(), &api.GetProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestCreatePost(t *testing.T) {
	p := &fakePosts{}
	s := newTestServer(&fakeAccounts{}, p)

	resp, err := s.CreatePost(auth.WithAccountID(context.Background(), "acc-1"), &api.CreatePostRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", p.createAuthor)
	assert.Equal(t, "hello", resp.Post.Content)
	assert.Equal(t, "acc-1", resp.Post.AuthorID)

	p.createErr = common.ErrNotFound
	_, err = s.CreatePost(auth.WithAccountID(context.Background(), "gone"), &api.CreatePostRequest{Content: "x"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.CreatePost(context.Background(), &api.CreatePostRequest{Content: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetPost(t *testing.T) {
	p := &fakePosts{getResp: &models.Post{ID: "p-9", Content: "c", AuthorID: "acc-2"}}
	s := newTestServer(&fakeAccounts{}, p)

	resp, err := s.GetPost(auth.WithAccountID(context.Background(), "acc-2"), &api.GetPostRequest{ID: "p-9"})
	require.NoError(t, err)
	assert.Equal(t, "acc-2", resp.Post.AuthorID)
	assert.Equal(t, "acc-2", p.getAccount)

	_, err = s.GetPost(auth.WithAccountID(context.Background(), "acc-1"), &api.GetPostRequest{ID: "p-9"})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "acc-1", p.getAccount)

	p.getResp, p.getErr = nil, common.ErrNotFound
	_, err = s.GetPost(auth.WithAccountID(context.Background(), "acc-2"), &api.GetPostRequest{ID: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.GetPost(context.Background(), &api.GetPostRequest{ID: "p-9"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestListMyPosts(t *testing.T) {
	p := &fakePosts{listResp: []*models.Post{{ID: "p-2"}, {ID: "p-1"}}}
	s := newTestServer(&fakeAccounts{}, p)

	resp, err := s.ListMyPosts(auth.WithAccountID(context.Background(), "acc-1"), &api.ListMyPostsRequest{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", p.listAuthor)
	assert.Equal(t, 5, p.listLimit)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "p-2", resp.Posts[0].ID)

	p.listResp = nil
	resp, err = s.ListMyPosts(auth.WithAccountID(context.Background(), "acc-1"), &api.ListMyPostsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Posts)
	assert.Empty(t, resp.Posts)

	p.listErr = errors.New("boom")
	_, err = s.ListMyPosts(auth.WithAccountID(context.Background(), "acc-1"), &api.ListMyPostsRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

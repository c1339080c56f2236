package grpc

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	result, err := s.accounts.Register(ctx, services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		s.logFailure(ctx, "registration failed", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "account_id", result.AccountID)
	return &api.RegisterResponse{AccountID: result.AccountID, Token: result.Token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	token, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.logFailure(ctx, "login failed", err)
		return nil, toStatus(err)
	}

	return &api.LoginResponse{Token: token}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *api.GetProfileRequest) (*api.GetProfileResponse, error) {
	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingToken)
	}

	profile, err := s.accounts.GetProfile(ctx, accountID)
	if err != nil {
		s.logFailure(ctx, "get profile failed", err)
		return nil, toStatus(err)
	}

	return &api.GetProfileResponse{Profile: api.Profile{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt,
	}}, nil
}

func (s *GRPCServer) CreatePost(ctx context.Context, req *api.CreatePostRequest) (*api.CreatePostResponse, error) {
	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingToken)
	}

	post, err := s.posts.Create(ctx, accountID, req.Content)
	if err != nil {
		s.logFailure(ctx, "create post failed", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Post created", "post_id", post.ID, "account_id", accountID)
	return &api.CreatePostResponse{Post: toAPIPost(post)}, nil
}

// GetPost returns one of the caller's own posts. Other authors' posts are
// NotFound.
func (s *GRPCServer) GetPost(ctx context.Context, req *api.GetPostRequest) (*api.GetPostResponse, error) {
	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingToken)
	}

	post, err := s.posts.Get(ctx, accountID, req.ID)
	if err != nil {
		s.logFailure(ctx, "get post failed", err)
		return nil, toStatus(err)
	}

	return &api.GetPostResponse{Post: toAPIPost(post)}, nil
}

func (s *GRPCServer) ListMyPosts(ctx context.Context, req *api.ListMyPostsRequest) (*api.ListMyPostsResponse, error) {
	accountID, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingToken)
	}

	posts, err := s.posts.ListByAuthor(ctx, accountID, int(req.Limit))
	if err != nil {
		s.logFailure(ctx, "list posts failed", err)
		return nil, toStatus(err)
	}

	out := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	return &api.ListMyPostsResponse{Posts: out}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func toAPIPost(p *models.Post) api.Post {
	return api.Post{
		ID:        p.ID,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// logFailure logs unexpected errors at error level and client mistakes at debug.
func (s *GRPCServer) logFailure(ctx context.Context, msg string, err error) {
	if isClientError(err) {
		s.logger.Debug(ctx, msg, "error", err.Error())
		return
	}
	s.logger.Error(ctx, msg, "error", err.Error())
}

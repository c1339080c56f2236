package client

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/api"
)

// Client is the operation set the CLI needs from the server.
type Client interface {
	Close() error
	Register(ctx context.Context, username, email, password string, bio *string) (string, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
	Profile(ctx context.Context) (*api.Profile, error)
	CreatePost(ctx context.Context, content string) (*api.Post, error)
	GetPost(ctx context.Context, id string) (*api.Post, error)
	ListMyPosts(ctx context.Context, limit int) ([]api.Post, error)
	Ping(ctx context.Context) error
}

package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.InkwellClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewInkwellClientService dials endpointURL. Extra dial options are appended
// after the defaults.
func NewInkwellClientService(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewInkwellClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// Register creates an account, keeps the returned session token and returns
// the new account id.
func (s *GRPCClient) Register(ctx context.Context, username, email, password string, bio *string) (string, error) {

	req := &api.RegisterRequest{Username: username, Email: email, Password: password, Bio: bio}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	s.setToken(resp.Token)
	return resp.AccountID, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) error {

	req := &api.LoginRequest{Email: email, Password: password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.Token)
	return nil
}

// Logout forgets the session token. Tokens are stateless, so the server is
// not involved.
func (s *GRPCClient) Logout() { s.setToken("") }

func (s *GRPCClient) LoggedIn() bool { return s.token() != "" }

func (s *GRPCClient) Profile(ctx context.Context) (*api.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Profile, nil
}

func (s *GRPCClient) CreatePost(ctx context.Context, content string) (*api.Post, error) {
	resp, err := s.client.CreatePost(ctx, &api.CreatePostRequest{Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Post, nil
}

func (s *GRPCClient) GetPost(ctx context.Context, id string) (*api.Post, error) {
	resp, err := s.client.GetPost(ctx, &api.GetPostRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Post, nil
}

func (s *GRPCClient) ListMyPosts(ctx context.Context, limit int) ([]api.Post, error) {
	resp, err := s.client.ListMyPosts(ctx, &api.ListMyPostsRequest{Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Posts, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrConflict, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

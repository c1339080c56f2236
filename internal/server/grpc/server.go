// Package grpc exposes the inkwell core over gRPC. Authentication is enforced
// by a unary interceptor in front of the protected methods.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"google.golang.org/grpc"
)

type accountSvc interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.Registration, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, accountID string) (*models.Profile, error)
}

type postSvc interface {
	Create(ctx context.Context, authorID, content string) (*models.Post, error)
	Get(ctx context.Context, accountID, id string) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error)
}

type authorizer interface {
	Authorize(header string) (string, error)
}

type GRPCServer struct {
	api.UnimplementedInkwellServer
	address  string
	accounts accountSvc
	posts    postSvc
	gate     authorizer
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, accounts accountSvc, posts postSvc, gate authorizer) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
		posts:    posts,
		gate:     gate,
	}
}

// newServer builds a grpc.Server with the interceptor chain and the service
// registered, without binding a listener.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterInkwellServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

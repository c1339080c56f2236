package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/api"
	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods lists the RPCs that require a bearer token.
var protectedMethods = map[string]struct{}{
	api.Inkwell_GetProfile_FullMethodName:  {},
	api.Inkwell_CreatePost_FullMethodName:  {},
	api.Inkwell_GetPost_FullMethodName:     {},
	api.Inkwell_ListMyPosts_FullMethodName: {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = values[0]
		}
	}

	accountID, err := s.gate.Authorize(header)
	if err != nil {
		s.logger.Warn(ctx, "request rejected", "method", info.FullMethod, "error", err.Error())
		return nil, toStatus(err)
	}

	return handler(auth.WithAccountID(ctx, accountID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "rpc finished",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}

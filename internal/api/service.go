package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "inkwell.v1.Inkwell"

const (
	Inkwell_Register_FullMethodName    = "/inkwell.v1.Inkwell/Register"
	Inkwell_Login_FullMethodName       = "/inkwell.v1.Inkwell/Login"
	Inkwell_GetProfile_FullMethodName  = "/inkwell.v1.Inkwell/GetProfile"
	Inkwell_CreatePost_FullMethodName  = "/inkwell.v1.Inkwell/CreatePost"
	Inkwell_GetPost_FullMethodName     = "/inkwell.v1.Inkwell/GetPost"
	Inkwell_ListMyPosts_FullMethodName = "/inkwell.v1.Inkwell/ListMyPosts"
	Inkwell_Ping_FullMethodName        = "/inkwell.v1.Inkwell/Ping"
)

// InkwellServer is the server API for the Inkwell service.
type InkwellServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	CreatePost(context.Context, *CreatePostRequest) (*CreatePostResponse, error)
	GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error)
	ListMyPosts(context.Context, *ListMyPostsRequest) (*ListMyPostsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedInkwellServer can be embedded to have forward compatible implementations.
type UnimplementedInkwellServer struct{}

func (UnimplementedInkwellServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedInkwellServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedInkwellServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedInkwellServer) CreatePost(context.Context, *CreatePostRequest) (*CreatePostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreatePost not implemented")
}
func (UnimplementedInkwellServer) GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPost not implemented")
}
func (UnimplementedInkwellServer) ListMyPosts(context.Context, *ListMyPostsRequest) (*ListMyPostsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyPosts not implemented")
}
func (UnimplementedInkwellServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterInkwellServer(s grpc.ServiceRegistrar, srv InkwellServer) {
	s.RegisterService(&Inkwell_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(InkwellServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InkwellServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InkwellServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Inkwell_ServiceDesc is the grpc.ServiceDesc for the Inkwell service.
var Inkwell_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InkwellServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(Inkwell_Register_FullMethodName, InkwellServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(Inkwell_Login_FullMethodName, InkwellServer.Login),
		},
		{
			MethodName: "GetProfile",
			Handler:    unaryHandler(Inkwell_GetProfile_FullMethodName, InkwellServer.GetProfile),
		},
		{
			MethodName: "CreatePost",
			Handler:    unaryHandler(Inkwell_CreatePost_FullMethodName, InkwellServer.CreatePost),
		},
		{
			MethodName: "GetPost",
			Handler:    unaryHandler(Inkwell_GetPost_FullMethodName, InkwellServer.GetPost),
		},
		{
			MethodName: "ListMyPosts",
			Handler:    unaryHandler(Inkwell_ListMyPosts_FullMethodName, InkwellServer.ListMyPosts),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(Inkwell_Ping_FullMethodName, InkwellServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inkwell/v1/inkwell",
}

// InkwellClient is the client API for the Inkwell service.
type InkwellClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*CreatePostResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error)
	ListMyPosts(ctx context.Context, in *ListMyPostsRequest, opts ...grpc.CallOption) (*ListMyPostsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type inkwellClient struct {
	cc grpc.ClientConnInterface
}

// NewInkwellClient returns a client that always speaks the JSON codec.
func NewInkwellClient(cc grpc.ClientConnInterface) InkwellClient {
	return &inkwellClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inkwellClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Inkwell_Register_FullMethodName, in, opts)
}

func (c *inkwellClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Inkwell_Login_FullMethodName, in, opts)
}

func (c *inkwellClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, Inkwell_GetProfile_FullMethodName, in, opts)
}

func (c *inkwellClient) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*CreatePostResponse, error) {
	return invoke[CreatePostResponse](ctx, c.cc, Inkwell_CreatePost_FullMethodName, in, opts)
}

func (c *inkwellClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error) {
	return invoke[GetPostResponse](ctx, c.cc, Inkwell_GetPost_FullMethodName, in, opts)
}

func (c *inkwellClient) ListMyPosts(ctx context.Context, in *ListMyPostsRequest, opts ...grpc.CallOption) (*ListMyPostsResponse, error) {
	return invoke[ListMyPostsResponse](ctx, c.cc, Inkwell_ListMyPosts_FullMethodName, in, opts)
}

func (c *inkwellClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, Inkwell_Ping_FullMethodName, in, opts)
}

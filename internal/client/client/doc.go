// Package client is the client-side transport for inkwell.
//
// GRPCClient dials the server, keeps the session token returned by Register
// or Login and attaches it to every outgoing call as an "authorization:
// Bearer <token>" header through a unary interceptor. gRPC status codes are
// mapped back to sentinel errors (ErrUnavailable, ErrUnauthorized and the
// common.Err* values) so callers can match them with errors.Is.
package client

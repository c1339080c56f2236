package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "inkwell"

// toStatus maps core errors onto gRPC status codes. Internal failures are
// reported without their cause.
func toStatus(err error) error {
	var authErr *common.AuthError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &authErr):
		return authStatus(authErr.Kind)
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}

// authStatus builds an Unauthenticated status whose ErrorInfo detail carries
// a machine-readable reason.
func authStatus(kind common.AuthErrorKind) error {
	st := status.New(codes.Unauthenticated, kind.String())
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: kind.Reason(),
		Domain: errorDomain,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// AuthReason extracts the ErrorInfo reason from a status error, or "".
func AuthReason(err error) string {
	for _, d := range status.Convert(err).Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func isClientError(err error) bool {
	return status.Code(toStatus(err)) != codes.Internal
}

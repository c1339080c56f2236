// Package common defines shared constants and sentinel errors used across
// the client and server layers of inkwell. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("authentication failed")
	ErrInternal           = errors.New("internal error")
)

// AuthErrorKind enumerates the ways a bearer token can be rejected.
type AuthErrorKind int

const (
	AuthMissingToken AuthErrorKind = iota + 1
	AuthMalformed
	AuthInvalidSignature
	AuthExpired
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthMissingToken:
		return "missing token"
	case AuthMalformed:
		return "malformed token"
	case AuthInvalidSignature:
		return "invalid token signature"
	case AuthExpired:
		return "token expired"
	default:
		return "unauthenticated"
	}
}

// Reason is the machine-readable code sent to clients in error details.
func (k AuthErrorKind) Reason() string {
	switch k {
	case AuthMissingToken:
		return "MISSING_TOKEN"
	case AuthMalformed:
		return "MALFORMED_TOKEN"
	case AuthInvalidSignature:
		return "INVALID_SIGNATURE"
	case AuthExpired:
		return "TOKEN_EXPIRED"
	default:
		return "UNAUTHENTICATED"
	}
}

// AuthError reports a rejected bearer token. Two AuthErrors match under
// errors.Is when their kinds are equal, so callers can compare against the
// sentinels below regardless of the wrapped cause.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// Token rejection sentinels.
var (
	ErrMissingToken          = &AuthError{Kind: AuthMissingToken}
	ErrTokenMalformed        = &AuthError{Kind: AuthMalformed}
	ErrTokenInvalidSignature = &AuthError{Kind: AuthInvalidSignature}
	ErrTokenExpired          = &AuthError{Kind: AuthExpired}
)

// NewAuthError wraps cause with the given kind.
func NewAuthError(kind AuthErrorKind, cause error) *AuthError {
	return &AuthError{Kind: kind, Err: cause}
}

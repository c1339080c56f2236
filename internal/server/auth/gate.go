package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
)

// TokenVerifier resolves a bearer token to the account it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Gate admits requests carrying a valid bearer token.
type Gate struct {
	verifier TokenVerifier
}

func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authorize validates an Authorization header value and returns the
// authenticated account id. A missing or non-Bearer header fails with
// common.ErrMissingToken; token problems are reported by the verifier.
func (g *Gate) Authorize(header string) (string, error) {
	token, ok := BearerToken(header)
	if !ok {
		return "", common.ErrMissingToken
	}
	return g.verifier.Verify(token)
}

// BearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

type accountIDKey struct{}

// WithAccountID returns a copy of ctx carrying the authenticated account id.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// AccountIDFromContext returns the account id stored by WithAccountID.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey{}).(string)
	return id, ok && id != ""
}

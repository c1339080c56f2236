// Package auth implements credential hashing, session tokens and the
// authorization gate in front of protected operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the account the token
// was issued to.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}

// TokenService issues and verifies HS256-signed session tokens. Tokens are
// stateless: their lifetime is fixed when issued and they are never stored.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

// NewTokenService returns a TokenService signing with secret. A nil clock
// means the system clock.
func NewTokenService(secret []byte, ttl time.Duration, clock Clock) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is empty: %w", common.ErrValidation)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s: %w", ttl, common.ErrValidation)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenService{secret: secret, ttl: ttl, clock: clock}, nil
}

// Issue signs a token for accountID valid from now until now+ttl.
func (s *TokenService) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("account id is empty: %w", common.ErrValidation)
	}

	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(s.ttl))),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// account id it was issued to. Failures are *common.AuthError values of kind
// Malformed, InvalidSignature or Expired.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// exp itself is still valid; jwt/v5 alone accepts only now < exp.
		jwt.WithLeeway(time.Nanosecond),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return "", classifyTokenError(err)
	}

	if claims.AccountID == "" {
		return "", common.NewAuthError(common.AuthMalformed, errors.New("account_id claim is missing"))
	}

	return claims.AccountID, nil
}

// ceilSecond rounds t up to a whole second. NumericDate keeps only seconds,
// so truncating would end the token before now+ttl.
func ceilSecond(t time.Time) time.Time {
	if tr := t.Truncate(time.Second); !tr.Equal(t) {
		return tr.Add(time.Second)
	}
	return t
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.NewAuthError(common.AuthMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.NewAuthError(common.AuthInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.NewAuthError(common.AuthExpired, err)
	default:
		return common.NewAuthError(common.AuthMalformed, err)
	}
}

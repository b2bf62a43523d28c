package devserver

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

// Issuer is the iss claim of every token the dev server signs
const Issuer = "alumni-devserver"

// ErrInvalidToken is returned for any token that fails validation
var ErrInvalidToken = stderrors.New("invalid token")

// Claims are the JWT claims of a dev server bearer token
type Claims struct {
	jwt.RegisteredClaims

	Email string        `json:"email"`
	Role  platform.Role `json:"role"`
}

// TokenIssuer signs and validates bearer tokens
type TokenIssuer struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenIssuer creates an issuer signing with key; tokens live for ttl
func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{signingKey: key, ttl: ttl, now: time.Now}
}

// Issue signs a token for user
func (ti *TokenIssuer) Issue(user platform.User) (string, error) {
	now := ti.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Validate parses token and checks its signature, issuer and lifetime
func (ti *TokenIssuer) Validate(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return ti.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

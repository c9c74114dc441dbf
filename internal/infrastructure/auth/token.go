// Package auth issues session tokens and prepares stored passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

// StaticToken is handed out by StaticIssuer. Clients treat it as opaque.
const StaticToken = "mock-jwt-token"

const defaultTokenTTL = 24 * time.Hour

// StaticIssuer returns the same token for every account.
type StaticIssuer struct{}

func (StaticIssuer) Issue(*domain.Account) (string, error) {
	return StaticToken, nil
}

// Claims are carried by tokens from JWTIssuer.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID parses the subject back into an account id.
func (c *Claims) AccountID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// JWTIssuer signs HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an issuer. A non-positive ttl falls back to 24 hours.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// NewTokenIssuer picks JWTIssuer when a secret is configured and StaticIssuer
// otherwise.
func NewTokenIssuer(secret string, ttl time.Duration) ports.TokenIssuer {
	if secret == "" {
		return StaticIssuer{}
	}
	return NewJWTIssuer(secret, ttl)
}

func (i *JWTIssuer) Issue(account *domain.Account) (string, error) {
	now := i.now()
	claims := Claims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(account.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token signed by this issuer and returns its claims.
func (i *JWTIssuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Verify returns the account id of a valid token.
func (i *JWTIssuer) Verify(token string) (int64, error) {
	claims, err := i.Parse(token)
	if err != nil {
		return 0, err
	}
	return claims.AccountID()
}

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims is the signed token payload. Subject carries the account email,
// mirroring what the rest of the service uses to resolve users.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

// Provider mints and validates HS256-signed session tokens.
type Provider struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewProvider creates a token provider. The secret should be at least 32
// bytes of random data in production.
func NewProvider(secret, issuer string, ttl time.Duration) (*Provider, error) {
	if len(secret) < 16 {
		return nil, errors.New("token: secret must be at least 16 characters")
	}
	if issuer == "" {
		issuer = "chirper"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Provider{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL exposes the configured token lifetime, used to size session records.
func (p *Provider) TTL() time.Duration {
	return p.ttl
}

// CreateToken signs a new token for the given identity. The returned token ID
// (jti) keys the corresponding session record.
func (p *Provider) CreateToken(userID int64, email, role string) (signed string, tokenID string, err error) {
	now := time.Now()
	tokenID = uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   email,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		UserID: userID,
		Role:   role,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err = tok.SignedString(p.secret)
	if err != nil {
		return "", "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, tokenID, nil
}

// Validate parses and verifies a token string, returning its claims.
func (p *Provider) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
			}
			return p.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, fmt.Errorf("token: invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token: invalid claims")
	}
	if claims.Issuer != p.issuer {
		return nil, errors.New("token: unknown issuer")
	}
	if claims.Subject == "" {
		return nil, errors.New("token: token has no subject")
	}
	return claims, nil
}

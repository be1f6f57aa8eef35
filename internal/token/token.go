package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the identity carried by both token classes.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Issuer mints signed tokens with a fixed TTL.
type Issuer interface {
	Issue(claims Claims) (string, error)
	TTL() time.Duration
}

// Verifier checks a token's signature and expiry and recovers its claims.
type Verifier interface {
	Verify(tokenString string) (Claims, error)
}

// IssuerVerifier combines both capabilities of one token class.
type IssuerVerifier interface {
	Issuer
	Verifier
}

type jwtClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens signed with one secret. The
// access and refresh token classes each get their own Manager so the two
// signing keys stay independent.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager for one secret and TTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token carrying the claims, expiring after the manager's TTL.
func (m *Manager) Issue(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks its signature and expiry against this
// manager's secret, and returns the embedded claims.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: claims.UserID, Email: claims.Email}, nil
}

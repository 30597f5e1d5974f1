package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrInvalidToken is returned for any token that fails validation. Expired,
// tampered and malformed tokens are not distinguished.
var ErrInvalidToken = errors.New("invalid token")

// ErrEmptySubject is returned by Issue for a token with no subject
var ErrEmptySubject = errors.New("token subject must not be empty")

const issuer = "llm-query-gateway"

// JWTManager issues and validates HS256 access tokens
type JWTManager struct {
	secret         []byte
	accessTokenTTL time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:         []byte(secret),
		accessTokenTTL: accessTTL,
	}
}

// Issue signs a token for subject that expires at now+ttl. A non-positive
// ttl uses the manager's default lifetime. exp has whole-second precision
// and is rounded up, so a token is always valid at now.
func (m *JWTManager) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if ttl <= 0 {
		ttl = m.accessTokenTTL
	}

	expiresAt := now.Add(ttl)
	if truncated := expiresAt.Truncate(time.Second); !truncated.Equal(expiresAt) {
		expiresAt = truncated.Add(time.Second)
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry against now and returns the subject
func (m *JWTManager) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		log.Debug().Msg("token rejected: missing subject")
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// AccessTokenTTL returns the access token TTL
func (m *JWTManager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

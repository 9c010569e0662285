package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/safarpk/safarpk/internal/domain"
)

type Purpose string

const (
	PurposeSession  Purpose = "session"
	PurposeRecovery Purpose = "recovery"
)

const issuer = "safarpk"

type Claims struct {
	UserID  string      `json:"sub"`
	Role    domain.Role `json:"role"`
	Purpose Purpose     `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session and recovery tokens.
type TokenIssuer struct {
	secret      []byte
	sessionTTL  time.Duration
	recoveryTTL time.Duration
	now         func() time.Time
}

func NewTokenIssuer(secret string, sessionTTL, recoveryTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		recoveryTTL: recoveryTTL,
		now:         time.Now,
	}
}

func (t *TokenIssuer) Issue(userID string, role domain.Role, purpose Purpose) (string, time.Time, error) {
	ttl := t.sessionTTL
	if purpose == PurposeRecovery {
		ttl = t.recoveryTTL
	}
	now := t.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry. Any failure is domain.ErrUnauthorized.
func (t *TokenIssuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

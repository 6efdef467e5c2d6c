// Package auth issues and verifies the bearer tokens that authorize mutating
// requests. Verification is a pure function of the token and the signing
// secret; no I/O happens here.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dreamshare/dreams-backend/internal/model"
)

// Identity is the caller identity a verified token asserts.
type Identity struct {
	UserID string
	Email  string
}

// Authenticator signs and verifies HS256 tokens. The secret is injected at
// construction and never leaves the struct.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken produces a signed token binding {userId, email} that expires
// after the configured TTL.
func (a *Authenticator) IssueToken(userID, email string) (string, error) {
	now := a.now()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the embedded
// identity. Every failure mode maps to model.ErrUnauthorized.
func (a *Authenticator) VerifyToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token: %w", model.ErrUnauthorized)
	}
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", model.ErrUnauthorized)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("token missing subject: %w", model.ErrUnauthorized)
	}
	return &Identity{UserID: c.Subject, Email: c.Email}, nil
}

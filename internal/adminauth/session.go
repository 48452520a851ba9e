package adminauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid credentials")
	ErrInvalidSession = errors.New("invalid session token")
)

// Sessions issues and verifies the signed admin session cookie. A single
// admin account is configured by email and bcrypt password hash.
type Sessions struct {
	signingKey   []byte
	adminEmail   string
	passwordHash []byte
	ttl          time.Duration
}

func NewSessions(signingKey []byte, adminEmail, passwordHash string, ttl time.Duration) *Sessions {
	return &Sessions{
		signingKey:   signingKey,
		adminEmail:   adminEmail,
		passwordHash: []byte(passwordHash),
		ttl:          ttl,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *Sessions) Login(email, password string) (string, error) {
	if email != s.adminEmail {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the admin email it was
// issued to.
func (s *Sessions) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// TTL is the session cookie lifetime.
func (s *Sessions) TTL() time.Duration { return s.ttl }

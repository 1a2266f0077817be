package application

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

const sessionKeyBytes = 32

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens carrying the
// username and admin flag. With a generated key, every token becomes invalid
// when the process restarts.
type SessionManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSessionManager creates a SessionManager signing with key. An empty key
// is replaced by random bytes.
func NewSessionManager(key []byte, ttl time.Duration) (*SessionManager, error) {
	if len(key) == 0 {
		key = make([]byte, sessionKeyBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
	}
	return &SessionManager{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for user.
func (m *SessionManager) Issue(user model.User) (string, error) {
	now := m.now()
	claims := sessionClaims{
		Admin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Authenticate verifies token and returns the session it carries. Missing,
// malformed, foreign or expired tokens yield model.ErrUnauthorized.
func (m *SessionManager) Authenticate(token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, fmt.Errorf("missing session: %w", model.ErrUnauthorized)
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Session{}, fmt.Errorf("session expired: %w", model.ErrUnauthorized)
		}
		return model.Session{}, fmt.Errorf("invalid session: %w", model.ErrUnauthorized)
	}
	if !parsed.Valid || claims.Subject == "" {
		return model.Session{}, fmt.Errorf("invalid session: %w", model.ErrUnauthorized)
	}

	return model.Session{Username: claims.Subject, IsAdmin: claims.Admin}, nil
}

// TTL returns the lifetime of issued tokens.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

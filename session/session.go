// Package session issues and verifies the signed cookie that carries
// the identity of a logged-in user.
//
// The whole session lives inside the cookie itself, the server keeps
// no session table. Anyone holding the signing key can mint sessions,
// nobody else can, and losing the cookie simply means logging in again.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "jokes_session"

	DefaultTTL = 30 * 24 * time.Hour
)

var (
	ErrUnauthenticated = errors.New("session: request is not authenticated")
)

type (
	Key [32]byte

	claims struct {
		jwt.RegisteredClaims
		UserID string `json:"uid"`
	}

	// Manager signs and verifies session cookies.
	Manager struct {
		key    Key
		ttl    time.Duration
		secure bool
	}
)

func (k *Key) Zero() {
	for i := range k {
		k[i] = 0
	}
}

func NewManager(key Key, ttl time.Duration, secureCookie bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{key: key, ttl: ttl, secure: secureCookie}
}

// Issue returns a cookie binding the given user id to a fresh signed
// token. The caller attaches it to exactly one response.
func (m *Manager) Issue(userID string) (*http.Cookie, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(m.key[:])
	if err != nil {
		return nil, fmt.Errorf("unable to sign session token, cause %w", err)
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl / time.Second),
	}, nil
}

// RequireUserID extracts the user id from the request cookie.
//
// Any failure mode (missing cookie, bad signature, expired token)
// collapses into ErrUnauthenticated, callers must treat it as fatal
// for the request instead of falling back to some anonymous identity.
func (m *Manager) RequireUserID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrUnauthenticated
	}
	var cl claims
	token, err := jwt.ParseWithClaims(cookie.Value, &cl, func(t *jwt.Token) (interface{}, error) {
		return m.key[:], nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || cl.UserID == "" {
		return "", ErrUnauthenticated
	}
	return cl.UserID, nil
}

// Destroy returns a cookie that clears the session on the client.
func (m *Manager) Destroy() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

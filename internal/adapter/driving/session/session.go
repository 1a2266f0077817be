// Package session carries the authenticated caller through HTTP requests.
// Tokens are read from the session cookie or an Authorization bearer header.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// CookieName is the name of the session cookie.
const CookieName = "academia_session"

// Authenticator verifies a session token.
type Authenticator interface {
	Authenticate(token string) (model.Session, error)
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s model.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by Middleware, if any.
func FromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(model.Session)
	return s, ok
}

// TokenFromRequest returns the bearer token, falling back to the session
// cookie. Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// SetCookie stores token in the session cookie for ttl.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware attaches the session to the request context when the request
// carries a valid token. Requests without one pass through unchanged; route
// handlers decide whether a session is required.
func Middleware(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token != "" {
			if s, err := auth.Authenticate(token); err == nil {
				r = r.WithContext(WithSession(r.Context(), s))
			}
		}
		next.ServeHTTP(w, r)
	})
}

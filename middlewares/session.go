package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie                   = "sid"
	sessionContextKey    ContextKey = "session"
	sessionCookieMaxAge             = 30 * 24 * time.Hour
)

// SessionMiddleware guarantees every request carries a session id. The
// id is an opaque uuid in a cookie; the cart store keys off it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := uuid.Nil
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sessionID, _ = uuid.Parse(cookie.Value)
		}

		if sessionID == uuid.Nil {
			sessionID = uuid.New()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID.String(),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Path:     "/",
				Expires:  time.Now().Add(sessionCookieMaxAge),
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID returns the session id attached by SessionMiddleware.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	sessionID, ok := r.Context().Value(sessionContextKey).(uuid.UUID)
	if !ok || sessionID == uuid.Nil {
		return uuid.Nil, errors.New("no session in context")
	}
	return sessionID, nil
}

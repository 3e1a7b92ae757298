package middleware

import (
	"context"
	"net/http"

	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/model"
)

// SessionResolver turns a session token into its user.
type SessionResolver interface {
	UserFromToken(ctx context.Context, token string) (*model.User, error)
	ClearJWTCookie(w http.ResponseWriter)
}

// AuthMiddleware adds the signed-in user to the context when the session
// cookie is valid. Requests without a session pass through unchanged; a stale
// cookie is cleared.
func AuthMiddleware(sessions SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.UserFromToken(r.Context(), cookie.Value)
			if err != nil {
				sessions.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireGuest sends signed-in visitors to the dashboard.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

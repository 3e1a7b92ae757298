package middleware

import (
	"net/http"

	"github.com/namaztracker/namaz/internal/ctxkeys"
)

// WithURLPath records the request path so the navigation can mark the active page.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package middleware

import (
	"net/http"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/ctxkeys"
)

// Config puts the sanitized configuration in the request context. Secrets stay out.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/namaztracker/namaz/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfCookieAge  = 7 * 24 * 60 * 60
)

// CSRF guards state-changing requests twice. Browsers that report a
// cross-origin request through Sec-Fetch-Site or Origin are refused outright,
// and every unsafe request must echo the token from the csrf_token cookie.
type CSRF struct {
	origins *http.CrossOriginProtection
}

// NewCSRF trusts the origin of each given base URL in addition to the
// request's own host. Empty URLs are ignored.
func NewCSRF(trusted ...string) (*CSRF, error) {
	origins := http.NewCrossOriginProtection()
	for _, raw := range trusted {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid trusted origin %q", raw)
		}
		err = origins.AddTrustedOrigin(u.Scheme + "://" + u.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted origin %q: %w", raw, err)
		}
	}
	return &CSRF{origins: origins}, nil
}

func (c *CSRF) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfToken(w, r)
		r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

		err := c.origins.Check(r)
		if err != nil {
			rejectCSRF(w, r, err.Error())
			return
		}

		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		submitted := r.Header.Get(csrfHeader)
		if submitted == "" {
			// Parses both urlencoded and multipart bodies.
			submitted = r.PostFormValue(CSRFFormField)
		}
		if submitted == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
			rejectCSRF(w, r, "token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func rejectCSRF(w http.ResponseWriter, r *http.Request, reason string) {
	ctxkeys.Logger(r.Context()).Warn("csrf check failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"ip", getClientIP(r),
	)
	http.Error(w, "Invalid CSRF token", http.StatusForbidden)
}

// csrfToken returns the cookie's token, issuing a new one when the cookie is
// missing or malformed.
func csrfToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && len(cookie.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenBytes) {
		return cookie.Value
	}

	b := make([]byte, csrfTokenBytes)
	_, _ = rand.Read(b) // never returns an error
	token := base64.RawURLEncoding.EncodeToString(b)

	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   csrfCookieAge,
	})
	return token
}

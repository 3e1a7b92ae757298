package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/service"
)

func fakeGoogle(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if r.PostFormValue("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"Amina@Example.com","name":"Amina"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthHandler(t *testing.T, auth *service.AuthService, clientID string) *AuthHandler {
	t.Helper()

	h := NewAuthHandler(auth, &config.Config{
		AppURL:             "http://localhost:8090",
		GoogleClientID:     clientID,
		GoogleClientSecret: "secret",
	})
	srv := fakeGoogle(t)
	h.googleOAuthConfig.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	h.userInfoURL = srv.URL + "/userinfo"
	return h
}

func TestGoogleAuth_DisabledWithoutClientID(t *testing.T) {
	h := newAuthHandler(t, newEnv(t).auth, "")

	rec := httptest.NewRecorder()
	h.GoogleAuth(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoogleAuth_SetsStateAndRedirects(t *testing.T) {
	h := newAuthHandler(t, newEnv(t).auth, "client")

	rec := httptest.NewRecorder()
	h.GoogleAuth(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, oauthStateCookie, cookies[0].Name)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", loc.Path)
	assert.Equal(t, cookies[0].Value, loc.Query().Get("state"))
	assert.Equal(t, "client", loc.Query().Get("client_id"))
}

func TestGoogleCallback(t *testing.T) {
	e := newEnv(t)
	h := newAuthHandler(t, e.auth, "client")

	callback := func(state, cookieState, code string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+state+"&code="+code, nil)
		if cookieState != "" {
			req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: cookieState})
		}
		rec := httptest.NewRecorder()
		h.GoogleCallback(rec, req)
		return rec
	}

	t.Run("state mismatch", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, callback("abc", "xyz", "good-code").Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, callback("abc", "", "good-code").Code)
	})

	t.Run("exchange fails", func(t *testing.T) {
		assert.Equal(t, http.StatusBadGateway, callback("abc", "abc", "bad-code").Code)
	})

	t.Run("signs in", func(t *testing.T) {
		rec := callback("abc", "abc", "good-code")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/app/dashboard", rec.Header().Get("Location"))

		var session string
		for _, c := range rec.Result().Cookies() {
			if c.Name == service.SessionCookie {
				session = c.Value
			}
		}
		require.NotEmpty(t, session)

		user, err := e.auth.UserFromToken(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", user.Email)
		assert.Equal(t, "Amina", user.Name)
	})
}

func TestLogoutClearsSession(t *testing.T) {
	h := newAuthHandler(t, newEnv(t).auth, "client")

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, service.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

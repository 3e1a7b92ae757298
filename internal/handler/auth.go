package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/ui"
)

const (
	oauthStateCookie  = "oauth_state"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	signInFailed      = "Sign-in failed. Please try again."
)

type AuthHandler struct {
	authService       *service.AuthService
	googleOAuthConfig *oauth2.Config
	userInfoURL       string
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

// GoogleAuth redirects to the Google consent screen with a state cookie.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuthConfig.ClientID == "" {
		http.NotFound(w, r)
		return
	}

	state := generateOAuthState()

	cfg := ctxkeys.Config(r.Context())
	isProduction := cfg != nil && cfg.IsProduction()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})

	http.Redirect(w, r, h.googleOAuthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback finishes the code exchange and starts a session.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		ctxkeys.Logger(r.Context()).Warn("google oauth state validation failed", "error", err)
		ui.RenderStatus(w, r, http.StatusBadRequest, ui.ErrorPage(signInFailed))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		ctxkeys.Logger(r.Context()).Warn("google oauth callback missing code")
		ui.RenderStatus(w, r, http.StatusBadRequest, ui.ErrorPage(signInFailed))
		return
	}

	token, err := h.googleOAuthConfig.Exchange(r.Context(), code)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("google oauth token exchange failed", "error", err)
		ui.RenderStatus(w, r, http.StatusBadGateway, ui.ErrorPage(signInFailed))
		return
	}

	client := h.googleOAuthConfig.Client(r.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to get google user info", "error", err)
		ui.RenderStatus(w, r, http.StatusBadGateway, ui.ErrorPage(signInFailed))
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			ctxkeys.Logger(r.Context()).Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil || resp.StatusCode != http.StatusOK {
		ctxkeys.Logger(r.Context()).Error("failed to decode google user info", "status", resp.StatusCode, "error", err)
		ui.RenderStatus(w, r, http.StatusBadGateway, ui.ErrorPage(signInFailed))
		return
	}

	user, err := h.authService.AuthenticateOAuth(r.Context(), userInfo.Email, userInfo.Name, model.ProviderGoogle)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("oauth authentication failed", "error", err)
		ui.RenderStatus(w, r, http.StatusBadRequest, ui.ErrorPage(signInFailed))
		return
	}

	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to generate JWT", "error", err, "user_id", user.ID)
		ui.RenderStatus(w, r, http.StatusInternalServerError, ui.ErrorPage(signInFailed))
		return
	}

	h.authService.SetJWTCookie(w, jwtToken, h.authService.Expiry())
	ctxkeys.Logger(r.Context()).Info("user signed in with google", "user_id", user.ID)
	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

func generateOAuthState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

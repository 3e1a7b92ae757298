package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namaztracker/namaz/internal/model"
)

const testSecret = "test-secret-that-is-long-enough-0123456789"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	s := NewAuthService(userRepository(t), testSecret, time.Hour, false)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestAuthenticateOAuth(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	first, err := s.AuthenticateOAuth(ctx, "  Aisha@Example.com ", "Aisha", model.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, "aisha@example.com", first.Email)
	assert.Equal(t, "Aisha", first.Name)
	assert.NotEmpty(t, first.ID)

	again, err := s.AuthenticateOAuth(ctx, "aisha@example.com", "", model.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = s.AuthenticateOAuth(ctx, "nope", "", model.ProviderGoogle)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestJWTRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	user, err := s.AuthenticateOAuth(ctx, "omar@example.com", "Omar", model.ProviderGoogle)
	require.NoError(t, err)

	token, err := s.GenerateJWT(user)
	require.NoError(t, err)

	got, err := s.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.UserFromToken(ctx, token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	_, err = s.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	s := newAuthService(t)
	token, err := s.GenerateJWT(&model.User{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)

	other := NewAuthService(nil, "another-secret", time.Hour, false)
	other.now = s.now
	_, err = other.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionCookies(t *testing.T) {
	s := newAuthService(t)

	rec := httptest.NewRecorder()
	s.SetJWTCookie(rec, "abc", s.Expiry())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	rec = httptest.NewRecorder()
	s.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestUpdateName(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	user, err := s.AuthenticateOAuth(ctx, "maryam@example.com", "", model.ProviderGoogle)
	require.NoError(t, err)

	require.NoError(t, s.UpdateName(ctx, user.ID, "  Maryam "))
	got, err := s.userRepository.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maryam", got.Name)

	assert.Error(t, s.UpdateName(ctx, user.ID, "   "))
}

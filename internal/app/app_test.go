package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		AppName:      "Namaz Tracker",
		AppEnv:       "development",
		StoreBackend: backend,
		StorePath:    dir,
		StoreKey:     "namaz-tracker-data",
		DBDriver:     "sqlite",
		DBConnection: filepath.Join(dir, "namaz.db"),
		JWTSecret:    "dev-secret",
		ContentPath:  filepath.Join("..", "..", "content"),
	}
}

func TestNewBackends(t *testing.T) {
	for _, backend := range []string{"file", "memory", BackendSQL} {
		t.Run(backend, func(t *testing.T) {
			a, err := New(testConfig(t, backend))
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			require.NotNil(t, a.AuthService)
			require.NotNil(t, a.HelpService)

			ctx := context.Background()
			_, err = a.RecordService.Mark(ctx, service.MarkInput{Date: "2024-01-01", PrayerID: model.PrayerFajr, Offered: true})
			require.NoError(t, err)

			day, err := a.RecordService.Day(ctx, "2024-01-01")
			require.NoError(t, err)
			assert.Equal(t, 1, day.TotalOffered)
		})
	}
}

func TestNewCLISkipsDatabase(t *testing.T) {
	a, err := NewCLI(testConfig(t, "file"))
	require.NoError(t, err)
	assert.Nil(t, a.DB)
	assert.Nil(t, a.AuthService)
	assert.NoError(t, a.Close())

	a, err = NewCLI(testConfig(t, BackendSQL))
	require.NoError(t, err)
	assert.NotNil(t, a.DB)
	assert.NoError(t, a.Close())
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewCLI(testConfig(t, "floppy"))
	assert.Error(t, err)
}

func TestNewRedisRateLimitUnreachable(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.RateLimitBackend = RateLimitRedis
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := New(cfg)
	assert.ErrorContains(t, err, "rate limiter")
}

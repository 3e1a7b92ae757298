package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cfg "github.com/namaztracker/namaz/internal/config"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore holds opaque values under string keys. Get returns
// ErrBlobNotFound for a key that was never written or has been deleted.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// New builds the blob backend selected by STORE_BACKEND.
func New(c *cfg.Config) (BlobStore, error) {
	slog.Info("initializing blob storage", "backend", c.StoreBackend)

	switch c.StoreBackend {
	case BackendFile, "":
		return NewFileStore(c.StorePath)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(RedisConfigFrom(c))
	case BackendS3:
		return NewS3Store(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func RedisConfigFrom(c *cfg.Config) RedisConfig {
	return RedisConfig{
		Addr:     c.RedisAddr,
		Username: c.RedisUsername,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/db"
	"github.com/namaztracker/namaz/internal/repository"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/storage"
)

const (
	// BackendSQL keeps prayer records in the prayer_records table instead of a blob.
	BackendSQL = "sql"
	// RateLimitRedis shares rate limit counters through redis.
	RateLimitRedis = "redis"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Records       repository.RecordStore
	RecordService *service.RecordService
	ReportService *service.ReportService
	AuthService   *service.AuthService
	HelpService   *service.HelpService

	// Redis is set only when RATE_LIMIT_BACKEND is redis.
	Redis *redis.Client
}

// New wires the web application. The database is always opened since
// signed-in users live there.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := build(cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	a.AuthService = service.NewAuthService(
		repository.NewUserRepository(database),
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	a.HelpService = service.NewHelpService(cfg.ContentPath)

	if cfg.RateLimitBackend == RateLimitRedis {
		a.Redis, err = storage.NewRedisClient(storage.RedisConfigFrom(cfg))
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to connect rate limiter: %w", err)
		}
	}
	return a, nil
}

// NewCLI wires record access only. The database is opened just for the sql backend.
func NewCLI(cfg *config.Config) (*App, error) {
	var database *sqlx.DB
	if cfg.StoreBackend == BackendSQL {
		var err error
		database, err = db.Open(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	a, err := build(cfg, database)
	if err != nil && database != nil {
		_ = database.Close()
	}
	return a, err
}

func build(cfg *config.Config, database *sqlx.DB) (*App, error) {
	records, err := newRecordStore(cfg, database)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:           cfg,
		DB:            database,
		Records:       records,
		RecordService: service.NewRecordService(records),
		ReportService: service.NewReportService(records),
	}, nil
}

func newRecordStore(cfg *config.Config, database *sqlx.DB) (repository.RecordStore, error) {
	if cfg.StoreBackend == BackendSQL {
		if database == nil {
			return nil, fmt.Errorf("store backend %q needs a database", BackendSQL)
		}
		return repository.NewSQLRecordStore(database), nil
	}

	blob, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return repository.NewBlobRecordStore(blob, cfg.StoreKey), nil
}

func (a *App) Close() error {
	if a.Redis != nil {
		err := a.Redis.Close()
		if err != nil {
			slog.Warn("failed to close redis", "error", err)
		}
	}
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/database"
	"github.com/chibox/chibox-server/internal/database/postgres"
	"github.com/chibox/chibox-server/internal/drophistory"
	"github.com/chibox/chibox-server/internal/eventlog"
	"github.com/chibox/chibox-server/internal/handler"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/repository/memory"
	"github.com/chibox/chibox-server/internal/session"
)

// Repository is everything the services need from the primary store
type Repository interface {
	repository.User
	repository.Catalog
	repository.CatalogWriter
	repository.Inventory
	repository.Attempts
	repository.Economy
}

// Repositories holds the storage backends chosen by configuration.
// PostgreSQL and Redis are optional; without them everything lives in memory.
type Repositories struct {
	Store    Repository
	Locker   claimlock.Locker
	History  drophistory.Store
	Sessions session.Store
	EventLog eventlog.Repository
	Checks   map[string]handler.HealthChecker

	closers []func()
}

// InitializeRepositories connects to the configured backends and runs migrations
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	repos := &Repositories{Checks: make(map[string]handler.HealthChecker)}

	if cfg.UsesPostgres() {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLifetime)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, pool.Close)

		if err := database.Migrate(ctx, pool); err != nil {
			repos.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		repos.Store = postgres.New(pool)
		repos.EventLog = postgres.NewEventLogRepository(pool)
		repos.Checks[CheckPostgres] = pool
		slog.Info(LogMsgStoragePostgres)
	} else {
		repos.Store = memory.New()
		repos.EventLog = eventlog.NewMemoryRepository()
		slog.Warn(LogMsgStorageMemory)
	}

	if cfg.UsesRedis() {
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			repos.Close()
			return nil, err
		}
		repos.closers = append(repos.closers, func() { _ = client.Close() })

		repos.Locker = claimlock.NewRedisLocker(client)
		repos.History = drophistory.NewRedisStore(client, drophistory.DefaultLimit, drophistory.DefaultTTL)
		repos.Sessions = session.NewRedisStore(client)
		repos.Checks[CheckRedis] = handler.HealthCheckFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		slog.Info(LogMsgStorageRedis, "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	} else {
		repos.Locker = claimlock.NewMemoryLocker()
		repos.History = drophistory.NewMemoryStore(drophistory.DefaultLimit)
		repos.Sessions = session.NewMemoryStore()
		slog.Info(LogMsgStorageMemoryLocks)
	}

	return repos, nil
}

// NewRedisClient connects and pings Redis
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}
	return client, nil
}

// Close releases connections in reverse order of creation
func (r *Repositories) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}


package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/visitlog/core/config"
	"github.com/dmitrymomot/visitlog/core/health"
	"github.com/dmitrymomot/visitlog/core/visit"
	"github.com/dmitrymomot/visitlog/integration/database/mongo"
	"github.com/dmitrymomot/visitlog/integration/database/pg"
	"github.com/dmitrymomot/visitlog/integration/database/redis"
	"github.com/dmitrymomot/visitlog/integration/visit/mongostore"
	"github.com/dmitrymomot/visitlog/integration/visit/pgstore"
	"github.com/dmitrymomot/visitlog/integration/visit/rediscache"
)

type visitStore interface {
	visit.Store
	visit.Finder
}

type backends struct {
	store   visitStore
	cache   visit.Cache
	checks  health.Checks
	closers []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func connect(ctx context.Context, cfg appConfig, log *slog.Logger) (*backends, error) {
	b := &backends{checks: health.Checks{}}

	switch cfg.StoreDriver {
	case "postgres":
		pool, err := connectPostgres(ctx, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		b.checks["postgres"] = pg.Healthcheck(pool)
		b.store = pgstore.New(pool)
	case "mongo":
		db, err := connectMongo(ctx, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		b.checks["mongo"] = mongo.Healthcheck(db.Client())
		store := mongostore.New(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			b.close()
			return nil, err
		}
		b.store = store
	case "memory", "":
		store := visit.NewMemoryStore()
		b.checks["store"] = store.Healthcheck
		b.store = store
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.CacheDriver {
	case "redis":
		client, err := connectRedis(ctx)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.checks["redis"] = redis.Healthcheck(client)
		b.cache = rediscache.New(client)
	case "memory", "":
		cache := visit.NewMemoryCache(visit.WithCacheLogger(log))
		b.checks["cache"] = cache.Healthcheck
		b.cache = cache
	default:
		b.close()
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	return b, nil
}

func connectPostgres(ctx context.Context, log *slog.Logger) (*pgxpool.Pool, error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pgstore.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func connectMongo(ctx context.Context, database string) (*mongodriver.Database, error) {
	var cfg mongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return mongo.NewWithDatabase(ctx, cfg, database)
}

func connectRedis(ctx context.Context) (*goredis.Client, error) {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return redis.Connect(ctx, cfg)
}

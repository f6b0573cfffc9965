// Package pg manages PostgreSQL connectivity on top of pgx: pooled connections with
// retry on startup, goose migrations, health checks, transaction propagation through
// context and classification of common PostgreSQL errors.
//
// # Configuration
//
// Config is loaded from the environment with caarlos0/env tags:
//
//	PG_CONN_URL            connection string (required)
//	PG_MAX_OPEN_CONNS      pool size (10)
//	PG_MAX_IDLE_CONNS      minimum warm connections (5)
//	PG_HEALTHCHECK_PERIOD  pool health check period (1m)
//	PG_MAX_CONN_IDLE_TIME  idle connection lifetime (10m)
//	PG_MAX_CONN_LIFETIME   connection lifetime (30m)
//	PG_RETRY_ATTEMPTS      connection attempts (3)
//	PG_RETRY_INTERVAL      base backoff interval (5s)
//	PG_MIGRATIONS_PATH     directory for Migrate
//	PG_MIGRATIONS_TABLE    goose version table (schema_migrations)
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	// Embedded schema
//	if err := pg.MigrateFS(ctx, pool, migrations, "user_visit_migrations", log); err != nil {
//		return err
//	}
//
//	healthy := pg.Healthcheck(pool)
//
// Migrations run through goose on a database/sql handle created from the pool, so
// no second connection pool is opened.
//
// # Transactions
//
// WithTx stores a pgx.Tx in a context and Conn picks it over the pool, letting a
// repository join the caller's transaction without a different API:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	res := store.Persist(pg.WithTx(ctx, tx), record)
//
// # Errors
//
// IsDuplicateKeyError (SQLSTATE 23505), IsForeignKeyViolationError (23503),
// IsNotFoundError (pgx.ErrNoRows) and IsTxClosedError classify driver errors.
// Connection and migration failures wrap the package sentinels, check them with
// errors.Is.
package pg

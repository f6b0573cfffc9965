package pgstore

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/visitlog/core/visit"
	"github.com/dmitrymomot/visitlog/integration/database/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable is the goose version table used by Migrate.
const MigrationsTable = "user_visit_migrations"

// Migrations returns the embedded schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate creates or upgrades the user_visits table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return pg.MigrateFS(ctx, pool, Migrations(), MigrationsTable, log)
}

// Store persists visits in PostgreSQL. A transaction attached with pg.WithTx is
// used instead of the pool.
type Store struct {
	pool pg.Querier
}

// New creates a Store over pool.
func New(pool pg.Querier) *Store {
	if pool == nil {
		panic("pgstore: pool is required")
	}
	return &Store{pool: pool}
}

// Persist inserts rec. A conflicting hash yields a duplicate result carrying
// the existing row.
func (s *Store) Persist(ctx context.Context, rec *visit.Record) visit.Result {
	if err := rec.Validate(); err != nil {
		return visit.Failed(err)
	}

	visitCtx, err := marshalContext(rec.Context)
	if err != nil {
		return visit.Failed(err)
	}

	db := pg.Conn(ctx, s.pool)
	err = db.QueryRow(ctx, insertQuery,
		rec.ID, rec.UserID, rec.Timestamp, rec.SessionKey, rec.RemoteAddr, rec.UserAgent,
		rec.Hash, visitCtx, rec.Device, rec.OS, rec.Browser,
	).Scan(&rec.CreatedAt)

	switch {
	case err == nil:
		return visit.Created(rec)
	case pg.IsNotFoundError(err), pg.IsDuplicateKeyError(err):
		// ON CONFLICT DO NOTHING returns no row. A raw unique violation still
		// surfaces when a concurrent transaction holds the same hash.
		existing, ferr := s.byHash(ctx, db, rec.Hash)
		if ferr != nil {
			return visit.Duplicate(nil, nil)
		}
		return visit.Duplicate(existing, nil)
	default:
		return visit.Failed(err)
	}
}

func (s *Store) byHash(ctx context.Context, db pg.Querier, hash string) (*visit.Record, error) {
	rows, err := db.Query(ctx, byHashQuery, hash)
	if err != nil {
		return nil, err
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns matching visits, newest first.
func (s *Store) List(ctx context.Context, f visit.Filter) ([]visit.Record, error) {
	q, args := listQuery(f)
	rows, err := pg.Conn(ctx, s.pool).Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list user visits: %w", err)
	}
	recs, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("list user visits: %w", err)
	}
	return recs, nil
}

// Latest returns the most recent visit of userID.
func (s *Store) Latest(ctx context.Context, userID string) (visit.Record, error) {
	recs, err := s.List(ctx, visit.Filter{UserID: userID, Limit: 1})
	if err != nil {
		return visit.Record{}, err
	}
	if len(recs) == 0 {
		return visit.Record{}, visit.ErrNotFound
	}
	return recs[0], nil
}

// Count returns the number of matching visits.
func (s *Store) Count(ctx context.Context, f visit.Filter) (int64, error) {
	q, args := countQuery(f)
	var n int64
	if err := pg.Conn(ctx, s.pool).QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user visits: %w", err)
	}
	return n, nil
}

func scanRecord(row pgx.CollectableRow) (visit.Record, error) {
	var (
		rec    visit.Record
		rawCtx []byte
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Timestamp, &rec.SessionKey, &rec.RemoteAddr, &rec.UserAgent,
		&rec.Hash, &rec.CreatedAt, &rawCtx, &rec.Device, &rec.OS, &rec.Browser,
	)
	if err != nil {
		return visit.Record{}, err
	}
	rec.Context, err = unmarshalContext(rawCtx)
	return rec, err
}

// marshalContext encodes the optional context. Empty contexts are stored as NULL.
func marshalContext(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Join(visit.ErrInvalidRecord, err)
	}
	return b, nil
}

func unmarshalContext(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

var (
	_ visit.Store  = (*Store)(nil)
	_ visit.Finder = (*Store)(nil)
)

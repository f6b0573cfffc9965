package pgstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/visit"
)

type fakeRow struct {
	createdAt time.Time
	err       error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*time.Time)) = r.createdAt
	return nil
}

// fakeQuerier answers the insert with row and fails every other query.
type fakeQuerier struct {
	row     fakeRow
	inserts int
	args    []any
}

func (q *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.inserts++
	q.args = args
	return q.row
}

func testRecord(t *testing.T) *visit.Record {
	t.Helper()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	fp, err := visit.Parse(testRequest{}, at)
	require.NoError(t, err)
	return visit.NewRecord(fp, at)
}

type testRequest struct{}

func (testRequest) UserID() string       { return "42" }
func (testRequest) SessionKey() string   { return "s1" }
func (testRequest) ForwardedFor() string { return "" }
func (testRequest) RemoteAddr() string   { return "10.0.0.1" }
func (testRequest) UserAgent() string    { return "UA-A" }

func TestPersistOutcomes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	createdAt := time.Date(2024, 3, 1, 10, 0, 1, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{createdAt: createdAt}}
		rec := testRecord(t)

		res := New(q).Persist(ctx, rec)
		require.Equal(t, visit.OutcomeCreated, res.Outcome)
		assert.NoError(t, res.Err)
		assert.Equal(t, createdAt, res.Record.CreatedAt)
		require.Len(t, q.args, 11)
		assert.Equal(t, rec.Hash, q.args[6])
		assert.Nil(t, q.args[7], "empty context must be stored as NULL")
	})

	t.Run("conflict returns no row", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

		res := New(q).Persist(ctx, testRecord(t))
		assert.Equal(t, visit.OutcomeDuplicate, res.Outcome)
		assert.ErrorIs(t, res.Err, visit.ErrDuplicate)
	})

	t.Run("unique violation", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "user_visits_hash_key"}}}

		res := New(q).Persist(ctx, testRecord(t))
		assert.Equal(t, visit.OutcomeDuplicate, res.Outcome)
	})

	t.Run("other errors are transient", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{err: errors.New("connection reset")}}

		res := New(q).Persist(ctx, testRecord(t))
		assert.Equal(t, visit.OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, visit.ErrTransient)
	})

	t.Run("invalid record never reaches the database", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{}

		res := New(q).Persist(ctx, &visit.Record{UserID: "42"})
		assert.Equal(t, visit.OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, visit.ErrInvalidRecord)
		assert.Zero(t, q.inserts)
	})
}

func TestNewRequiresPool(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}

package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/integration/database/pg"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "user_visits_hash_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "visits_user_fk"}

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pg.IsDuplicateKeyError(unique))
		assert.True(t, pg.IsDuplicateKeyError(fmt.Errorf("insert: %w", unique)))
		assert.True(t, pg.IsDuplicateKeyError(unique, "user_visits_hash_key"))
		assert.False(t, pg.IsDuplicateKeyError(unique, "other_key"))
		assert.False(t, pg.IsDuplicateKeyError(fk))
		assert.False(t, pg.IsDuplicateKeyError(errors.New("23505")))
		assert.False(t, pg.IsDuplicateKeyError(nil))
	})

	t.Run("foreign key", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pg.IsForeignKeyViolationError(fk))
		assert.False(t, pg.IsForeignKeyViolationError(unique))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
		assert.True(t, pg.IsNotFoundError(fmt.Errorf("query: %w", pgx.ErrNoRows)))
		assert.False(t, pg.IsNotFoundError(unique))
	})

	t.Run("tx closed", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
		assert.False(t, pg.IsTxClosedError(pgx.ErrNoRows))
	})
}

func TestTxContext(t *testing.T) {
	t.Parallel()

	_, ok := pg.TxFromContext(context.Background())
	assert.False(t, ok)

	ctx := pg.WithTx(context.Background(), nil)
	_, ok = pg.TxFromContext(ctx)
	assert.False(t, ok, "nil transaction must not be stored")

	//nolint:staticcheck // nil context is handled explicitly
	_, ok = pg.TxFromContext(nil)
	assert.False(t, ok)
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	require.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	require.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrateValidation(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, pg.Config{}, nil)
	require.ErrorIs(t, err, pg.ErrMigrationPathNotProvided)

	err = pg.Migrate(context.Background(), nil, pg.Config{MigrationsPath: "./does-not-exist"}, nil)
	require.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
}

// Package pgstore stores user visits in PostgreSQL.
//
// The user_visits table carries a unique constraint on hash. Persist inserts with
// ON CONFLICT (hash) DO NOTHING, so concurrent requests for the same visit resolve
// in the database: one insert wins and the others get a duplicate result with the
// stored row.
//
//	pool, err := pg.Connect(ctx, pgCfg)
//	if err != nil {
//		return err
//	}
//	if err := pgstore.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
//	recorder, err := visit.NewRecorder(cfg, pgstore.New(pool))
//
// Persist and the queries join a transaction attached with pg.WithTx.
package pgstore

// Package mongostore stores user visits in MongoDB.
//
// Documents mirror the PostgreSQL schema with the record id as _id. A unique
// index on hash makes concurrent inserts of the same visit collapse into one
// document; the losers receive a duplicate result.
//
// Nested context values come back as map[string]any and []any, as from the
// PostgreSQL store. Numbers keep their BSON types (int32, int64, float64) where
// the JSON column yields float64.
//
//	db, err := mongo.NewWithDatabase(ctx, mongoCfg, "app")
//	if err != nil {
//		return err
//	}
//	store := mongostore.New(db)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// NewWithCollection accepts any Collection, e.g. a wrapped *mongo.Collection.
package mongostore

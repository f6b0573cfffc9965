package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/visitlog/core/visit"
)

// DefaultCollection is the collection used unless WithCollection is given.
const DefaultCollection = "user_visits"

const hashIndexName = "user_visits_hash_key"

// Collection is the part of *mongo.Collection the store uses.
type Collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	Indexes() mongo.IndexView
}

var _ Collection = (*mongo.Collection)(nil)

// Store persists visits in a MongoDB collection with a unique index on hash.
type Store struct {
	coll Collection
	now  func() time.Time
}

type storeOptions struct {
	collection string
	now        func() time.Time
}

// Option configures a Store.
type Option func(*storeOptions)

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(o *storeOptions) {
		if name != "" {
			o.collection = name
		}
	}
}

// WithNow sets the function stamping CreatedAt.
func WithNow(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates a Store on db. Call EnsureIndexes once before use.
func New(db *mongo.Database, opts ...Option) *Store {
	if db == nil {
		panic("mongostore: database is required")
	}
	o := newStoreOptions(opts)
	return &Store{coll: db.Collection(o.collection), now: o.now}
}

// NewWithCollection creates a Store on coll. WithCollection is ignored.
func NewWithCollection(coll Collection, opts ...Option) *Store {
	if coll == nil {
		panic("mongostore: collection is required")
	}
	o := newStoreOptions(opts)
	return &Store{coll: coll, now: o.now}
}

func newStoreOptions(opts []Option) *storeOptions {
	o := &storeOptions{collection: DefaultCollection, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Indexes returns the index models the store relies on.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hash", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(hashIndexName),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("user_visits_user_id_timestamp_idx"),
		},
	}
}

// EnsureIndexes creates the unique hash index and the per-user timeline index.
// It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.coll.Indexes().CreateMany(ctx, Indexes()); err != nil {
		return fmt.Errorf("create user visit indexes: %w", err)
	}
	return nil
}

// Persist inserts rec. A duplicate key error on hash yields a duplicate result
// carrying the stored document.
func (s *Store) Persist(ctx context.Context, rec *visit.Record) visit.Result {
	if err := rec.Validate(); err != nil {
		return visit.Failed(err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}

	_, err := s.coll.InsertOne(ctx, toDocument(rec))
	switch {
	case err == nil:
		return visit.Created(rec)
	case mongo.IsDuplicateKeyError(err):
		existing, ferr := s.byHash(ctx, rec.Hash)
		if ferr != nil {
			return visit.Duplicate(nil, nil)
		}
		return visit.Duplicate(&existing, nil)
	default:
		return visit.Failed(err)
	}
}

func (s *Store) byHash(ctx context.Context, hash string) (visit.Record, error) {
	var doc document
	if err := s.coll.FindOne(ctx, bson.D{{Key: "hash", Value: hash}}).Decode(&doc); err != nil {
		return visit.Record{}, err
	}
	return doc.record()
}

// List returns matching visits, newest first.
func (s *Store) List(ctx context.Context, f visit.Filter) ([]visit.Record, error) {
	opts := options.Find().SetSort(sortNewestFirst())
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.coll.Find(ctx, filterDoc(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list user visits: %w", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list user visits: %w", err)
	}

	recs := make([]visit.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := d.record()
		if err != nil {
			return nil, fmt.Errorf("decode user visit %s: %w", d.ID, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Latest returns the most recent visit of userID.
func (s *Store) Latest(ctx context.Context, userID string) (visit.Record, error) {
	var doc document
	err := s.coll.FindOne(ctx,
		filterDoc(visit.Filter{UserID: userID}),
		options.FindOne().SetSort(sortNewestFirst()),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return visit.Record{}, visit.ErrNotFound
	}
	if err != nil {
		return visit.Record{}, fmt.Errorf("latest user visit: %w", err)
	}
	return doc.record()
}

// Count returns the number of matching visits. Limit is ignored.
func (s *Store) Count(ctx context.Context, f visit.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, filterDoc(f))
	if err != nil {
		return 0, fmt.Errorf("count user visits: %w", err)
	}
	return n, nil
}

func sortNewestFirst() bson.D {
	return bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}}
}

var (
	_ visit.Store  = (*Store)(nil)
	_ visit.Finder = (*Store)(nil)
)

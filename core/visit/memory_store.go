package visit

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/coder/quartz"
)

// MemoryStore keeps records in process memory, keyed by digest.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	clock   quartz.Clock
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithStoreClock sets the clock used for CreatedAt.
func WithStoreClock(clock quartz.Clock) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if clock != nil {
			ms.clock = clock
		}
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		records: make(map[string]*Record),
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Persist inserts rec unless a record with the same digest exists.
// On a duplicate the stored record is returned, untouched.
func (ms *MemoryStore) Persist(ctx context.Context, rec *Record) Result {
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}
	if err := rec.Validate(); err != nil {
		return Failed(err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if existing, ok := ms.records[rec.Hash]; ok {
		return Duplicate(existing.Clone(), nil)
	}

	stored := rec.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = ms.clock.Now()
	}
	ms.records[stored.Hash] = stored
	rec.CreatedAt = stored.CreatedAt

	return Created(stored.Clone())
}

// List returns matching records, newest first.
func (ms *MemoryStore) List(ctx context.Context, f Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	out := make([]Record, 0, len(ms.records))
	for _, rec := range ms.records {
		if f.Match(*rec) {
			out = append(out, *rec.Clone())
		}
	}
	ms.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.Hash, b.Hash)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Latest returns the most recent visit of userID.
func (ms *MemoryStore) Latest(ctx context.Context, userID string) (Record, error) {
	recs, err := ms.List(ctx, Filter{UserID: userID, Limit: 1})
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, ErrNotFound
	}
	return recs[0], nil
}

// Count returns the number of matching records. Limit is ignored.
func (ms *MemoryStore) Count(ctx context.Context, f Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var n int64
	for _, rec := range ms.records {
		if f.Match(*rec) {
			n++
		}
	}
	return n, nil
}

// Len returns the total number of stored records.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.records)
}

// Healthcheck always succeeds while the context is alive.
func (ms *MemoryStore) Healthcheck(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Finder = (*MemoryStore)(nil)
)

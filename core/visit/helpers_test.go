package visit_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/visitlog/core/visit"
)

type fakeRequest struct {
	user    string
	session string
	xff     string
	remote  string
	ua      string
}

func (f fakeRequest) UserID() string       { return f.user }
func (f fakeRequest) SessionKey() string   { return f.session }
func (f fakeRequest) ForwardedFor() string { return f.xff }
func (f fakeRequest) RemoteAddr() string   { return f.remote }
func (f fakeRequest) UserAgent() string    { return f.ua }

func baseRequest() fakeRequest {
	return fakeRequest{user: "42", session: "s1", remote: "10.0.0.1:5555", ua: "UA-A"}
}

// spyStore counts Persist calls and delegates to a MemoryStore.
type spyStore struct {
	*visit.MemoryStore
	calls atomic.Int64
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: visit.NewMemoryStore()}
}

func (s *spyStore) Persist(ctx context.Context, rec *visit.Record) visit.Result {
	s.calls.Add(1)
	return s.MemoryStore.Persist(ctx, rec)
}

// failingStore always reports a transient failure.
type failingStore struct {
	err error
}

func (s failingStore) Persist(context.Context, *visit.Record) visit.Result {
	return visit.Failed(s.err)
}

// spyCache counts cache calls and delegates to a MemoryCache.
type spyCache struct {
	*visit.MemoryCache
	gets   atomic.Int64
	sets   atomic.Int64
	getErr error
}

func newSpyCache() *spyCache {
	return &spyCache{MemoryCache: visit.NewMemoryCache()}
}

func (c *spyCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets.Add(1)
	if c.getErr != nil {
		return "", false, c.getErr
	}
	return c.MemoryCache.Get(ctx, key)
}

func (c *spyCache) Set(ctx context.Context, key, hash string, ttl time.Duration) error {
	c.sets.Add(1)
	return c.MemoryCache.Set(ctx, key, hash, ttl)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

package visit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/dmitrymomot/visitlog/core/logger"
	"github.com/dmitrymomot/visitlog/pkg/async"
)

// Recorder decides per request whether a visit must be persisted and does so.
// It never returns errors to the caller's request path: failures are logged and
// reported in the Result.
type Recorder struct {
	cfg    Config
	store  Store
	cache  Cache
	clock  quartz.Clock
	logger *slog.Logger

	pending sync.WaitGroup
}

// admission is everything a visit needs once the request may be gone.
type admission struct {
	fp      Fingerprint
	now     time.Time
	context map[string]any
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithCache enables the dedup cache. Without it every eligible request reaches the store.
func WithCache(c Cache) Option {
	return func(r *Recorder) {
		r.cache = c
	}
}

// WithLogger sets the logger for duplicate and failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the clock that decides the visit date and timestamp.
func WithClock(c quartz.Clock) Option {
	return func(r *Recorder) {
		if c != nil {
			r.clock = c
		}
	}
}

// NewRecorder builds a Recorder. It returns ErrRecordingDisabled when cfg.Disabled
// is set, so hosts can leave the middleware out entirely.
func NewRecorder(cfg Config, store Store, opts ...Option) (*Recorder, error) {
	if cfg.Disabled {
		return nil, ErrRecordingDisabled
	}
	if store == nil {
		return nil, ErrMissingStore
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DuplicateLogLevel == "" {
		cfg.DuplicateLogLevel = LevelWarning
	}

	r := &Recorder{
		cfg:    cfg,
		store:  store,
		clock:  quartz.NewReal(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Record runs the visit decision for req and returns how it ended.
func (r *Recorder) Record(ctx context.Context, req Request) Result {
	a, res, ok := r.admit(req)
	if !ok {
		return res
	}
	return r.record(ctx, a)
}

// RecordAsync records in a goroutine. The gate, the fingerprint and the context
// extractor run before it returns, so the background work never reads req.
// The work is detached from ctx cancellation but keeps its values; pass a
// context that is not mutated after the call. Use Flush to wait for it.
func (r *Recorder) RecordAsync(ctx context.Context, req Request) *async.Future[Result] {
	a, res, ok := r.admit(req)
	if !ok {
		return async.Async(context.WithoutCancel(ctx), res, func(_ context.Context, res Result) (Result, error) {
			return res, nil
		})
	}

	r.pending.Add(1)
	return async.Async(context.WithoutCancel(ctx), a, func(ctx context.Context, a admission) (Result, error) {
		defer r.pending.Done()
		return r.record(ctx, a), nil
	})
}

// Flush waits for background records started by RecordAsync, or until ctx is done.
// Call it once request intake has stopped, e.g. after the HTTP server shut down.
func (r *Recorder) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// admit applies the gate and captures the fingerprint and context of req.
func (r *Recorder) admit(req Request) (admission, Result, bool) {
	if req == nil || req.UserID() == "" {
		return admission{}, skipped(ErrAnonymous), false
	}
	if r.cfg.bypass(req) {
		return admission{}, skipped(nil), false
	}

	now := r.clock.Now()
	fp, err := Parse(req, now)
	if err != nil {
		return admission{}, skipped(err), false
	}
	return admission{fp: fp, now: now, context: r.cfg.extract(req)}, Result{}, true
}

func (r *Recorder) record(ctx context.Context, a admission) Result {
	fp := a.fp
	key := fp.CacheKey()

	if r.cache != nil {
		hash, ok, err := r.cache.Get(ctx, key)
		switch {
		case err != nil:
			r.logger.WarnContext(ctx, "user visit cache lookup failed",
				logger.UserID(fp.UserID),
				logger.Error(err),
			)
		case ok && hash == fp.Hash:
			return cached()
		}
	}

	rec := NewRecord(fp, a.now)
	rec.Context = a.context

	res := r.store.Persist(ctx, rec)
	switch res.Outcome {
	case OutcomeCreated:
		if res.Record == nil {
			res.Record = rec
		}
	case OutcomeDuplicate:
		r.logger.Log(ctx, r.cfg.DuplicateLogLevel.Slog(), "user visit already recorded",
			logger.UserID(fp.UserID),
			logger.SessionKey(fp.SessionKey),
			logger.Hash(fp.Hash),
		)
	default:
		if res.Err == nil || !errors.Is(res.Err, ErrTransient) {
			res = Failed(res.Err)
		}
		r.logger.ErrorContext(ctx, "user visit could not be recorded",
			logger.UserID(fp.UserID),
			logger.Hash(fp.Hash),
			logger.Error(res.Err),
		)
		return res
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, fp.Hash, UntilMidnight(a.now)); err != nil {
			r.logger.WarnContext(ctx, "user visit cache update failed",
				logger.UserID(fp.UserID),
				logger.Error(err),
			)
		}
	}
	return res
}

// Config returns the resolved configuration.
func (r *Recorder) Config() Config {
	return r.cfg
}

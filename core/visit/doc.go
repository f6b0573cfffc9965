// Package visit records at most one visit per user, calendar day, session, origin
// address and client signature.
//
// A Recorder sits in the request path. For every request from an authenticated
// user it computes a Fingerprint, checks an optional Cache of the last digest seen
// for the user's session, and otherwise asks a Store to persist a Record. The
// store's unique constraint on the digest is what resolves races between
// concurrent requests; a conflict is reported as a duplicate and never as an
// error.
//
//	cfg, err := visit.LoadConfig(visit.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	rec, err := visit.NewRecorder(cfg, store,
//		visit.WithCache(visit.NewMemoryCache()),
//		visit.WithLogger(log),
//	)
//	if errors.Is(err, visit.ErrRecordingDisabled) {
//		// leave the middleware out
//	}
//
//	res := rec.Record(ctx, visit.NewRequest(r, userID, sessionKey))
//	switch res.Outcome {
//	case visit.OutcomeCreated, visit.OutcomeDuplicate, visit.OutcomeCached:
//	case visit.OutcomeFailed:
//		// already logged; the request goes on
//	}
//
// # Configuration
//
// LoadConfig reads USER_VISIT_RECORDING_DISABLED and USER_VISIT_DUPLICATE_LOG_LEVEL
// (debug, info, warning or warn, error) on top of the values the host supplies.
// Bypass and ContextExtractor are set in code only.
//
// # Cache lifetime
//
// Cache entries expire at the next local midnight, so a new day always reaches
// the store. MemoryCache serves single-process deployments; share a Redis-backed
// cache between processes to keep store traffic low.
package visit

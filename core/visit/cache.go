package visit

import (
	"context"
	"time"
)

// Cache remembers the last recorded digest per identity and session.
// It is advisory: a miss or an error falls through to the store.
type Cache interface {
	Get(ctx context.Context, key string) (hash string, ok bool, err error)
	Set(ctx context.Context, key, hash string, ttl time.Duration) error
}

// UntilMidnight returns the time left until the next local midnight of now's
// location. It is always positive.
func UntilMidnight(now time.Time) time.Duration {
	next := startOfDay(now).AddDate(0, 0, 1)
	return next.Sub(now)
}

package visit

import (
	"context"
	"time"
)

// Store persists visit records. Implementations enforce uniqueness of Record.Hash
// and classify a conflict as a duplicate, never as a failure.
type Store interface {
	Persist(ctx context.Context, rec *Record) Result
}

// Finder answers reporting queries. Results are ordered by Timestamp descending.
type Finder interface {
	List(ctx context.Context, f Filter) ([]Record, error)
	Latest(ctx context.Context, userID string) (Record, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

// Filter narrows reporting queries. Zero fields match everything.
// From is inclusive and To is exclusive. Limit <= 0 means no limit.
type Filter struct {
	UserID     string
	SessionKey string
	RemoteAddr string
	From       time.Time
	To         time.Time
	Limit      int
}

// Match reports whether rec satisfies the filter, ignoring Limit.
func (f Filter) Match(rec Record) bool {
	if f.UserID != "" && rec.UserID != f.UserID {
		return false
	}
	if f.SessionKey != "" && rec.SessionKey != f.SessionKey {
		return false
	}
	if f.RemoteAddr != "" && rec.RemoteAddr != f.RemoteAddr {
		return false
	}
	if !f.From.IsZero() && rec.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !rec.Timestamp.Before(f.To) {
		return false
	}
	return true
}

// Day returns a filter covering the calendar day of t for userID.
func Day(userID string, t time.Time) Filter {
	from := startOfDay(t)
	return Filter{UserID: userID, From: from, To: from.AddDate(0, 0, 1)}
}

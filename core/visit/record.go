package visit

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/visitlog/pkg/fingerprint"
)

// Record is a persisted user visit.
type Record struct {
	ID         uuid.UUID
	UserID     string
	Timestamp  time.Time
	SessionKey string
	RemoteAddr string
	UserAgent  string
	Hash       string
	CreatedAt  time.Time
	Context    map[string]any

	// Display fields derived from UserAgent by an out-of-band job. Left empty here.
	Device  string
	OS      string
	Browser string
}

// NewRecord builds an unsaved record for fp observed at ts.
func NewRecord(fp Fingerprint, ts time.Time) *Record {
	return &Record{
		ID:         uuid.New(),
		UserID:     fp.UserID,
		Timestamp:  ts,
		SessionKey: fp.SessionKey,
		RemoteAddr: fp.RemoteAddr,
		UserAgent:  fp.UserAgent,
		Hash:       fp.Hash,
	}
}

// Date returns the calendar date of the visit in the timestamp's location.
func (r Record) Date() time.Time {
	return startOfDay(r.Timestamp)
}

func (r Record) String() string {
	return fmt.Sprintf("%s visited on %s", r.UserID, r.Timestamp.Format(DateLayout))
}

// Validate checks the fields every store requires.
func (r *Record) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	case r.UserID == "":
		return fmt.Errorf("%w: empty user id", ErrInvalidRecord)
	case r.Timestamp.IsZero():
		return fmt.Errorf("%w: zero timestamp", ErrInvalidRecord)
	case !fingerprint.Valid(r.Hash):
		return fmt.Errorf("%w: malformed hash %q", ErrInvalidRecord, r.Hash)
	}
	return nil
}

// Clone returns a copy that does not share the context map.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Context != nil {
		c.Context = make(map[string]any, len(r.Context))
		for k, v := range r.Context {
			c.Context[k] = v
		}
	}
	return &c
}

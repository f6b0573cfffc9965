package visit

import (
	"errors"
	"time"

	"github.com/dmitrymomot/visitlog/pkg/clientip"
	"github.com/dmitrymomot/visitlog/pkg/fingerprint"
)

// DateLayout is the calendar date layout fed into the digest.
const DateLayout = "2006-01-02"

const cacheKeyPrefix = "user_visit:"

// Fingerprint is the dedup identity of a visit: who, which day, which session,
// from where and with which client.
type Fingerprint struct {
	UserID     string
	Date       time.Time
	SessionKey string
	RemoteAddr string
	UserAgent  string
	Hash       string
}

// Parse extracts the fingerprint of req for the calendar date of at.
// A zero at means now.
func Parse(req Request, at time.Time) (Fingerprint, error) {
	if req == nil {
		return Fingerprint{}, ErrInvalidRequest
	}
	userID := req.UserID()
	if userID == "" {
		return Fingerprint{}, errors.Join(ErrInvalidRequest, ErrAnonymous)
	}
	if at.IsZero() {
		at = time.Now()
	}

	fp := Fingerprint{
		UserID:     userID,
		Date:       startOfDay(at),
		SessionKey: req.SessionKey(),
		RemoteAddr: clientip.Origin(req.ForwardedFor(), req.RemoteAddr()),
		UserAgent:  req.UserAgent(),
	}
	fp.Hash = fingerprint.Sum(fp.UserID, fp.Date.Format(DateLayout), fp.SessionKey, fp.RemoteAddr, fp.UserAgent)
	return fp, nil
}

// CacheKey is the dedup cache key for the identity and session of the fingerprint.
func (f Fingerprint) CacheKey() string {
	return CacheKey(f.UserID, f.SessionKey)
}

// CacheKey builds the dedup cache key for a user and session.
func CacheKey(userID, sessionKey string) string {
	return cacheKeyPrefix + userID + ":" + sessionKey
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

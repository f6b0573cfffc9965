package visit

import (
	"net/http"

	"github.com/dmitrymomot/visitlog/pkg/clientip"
)

// Request is the narrow view of an inbound request needed to fingerprint a visit.
type Request interface {
	// UserID returns the authenticated identity, or "" for anonymous requests.
	UserID() string
	// SessionKey returns the session identifier, or "" if no session exists yet.
	SessionKey() string
	// ForwardedFor returns the raw X-Forwarded-For header value.
	ForwardedFor() string
	// RemoteAddr returns the peer address, possibly with a port.
	RemoteAddr() string
	UserAgent() string
}

type httpRequest struct {
	r            *http.Request
	userID       string
	sessionKey   string
	forwardedFor string
	remoteAddr   string
	userAgent    string
}

// NewRequest adapts an *http.Request. Identity and session are resolved by the
// host's auth and session layers and passed in. Origin and client signature are
// copied at construction, so later changes to r do not affect the visit.
func NewRequest(r *http.Request, userID, sessionKey string) Request {
	return &httpRequest{
		r:            r,
		userID:       userID,
		sessionKey:   sessionKey,
		forwardedFor: r.Header.Get(clientip.HeaderForwardedFor),
		remoteAddr:   r.RemoteAddr,
		userAgent:    r.UserAgent(),
	}
}

func (h *httpRequest) UserID() string       { return h.userID }
func (h *httpRequest) SessionKey() string   { return h.sessionKey }
func (h *httpRequest) ForwardedFor() string { return h.forwardedFor }
func (h *httpRequest) RemoteAddr() string   { return h.remoteAddr }
func (h *httpRequest) UserAgent() string    { return h.userAgent }

// HTTP returns the wrapped request.
func (h *httpRequest) HTTP() *http.Request { return h.r }

// HTTPRequest returns the *http.Request behind req when it was built by NewRequest.
// Bypass predicates and context extractors use it to reach headers or the path.
// The Recorder calls them before RecordAsync returns, never from the background
// goroutine.
func HTTPRequest(req Request) (*http.Request, bool) {
	h, ok := req.(interface{ HTTP() *http.Request })
	if !ok {
		return nil, false
	}
	return h.HTTP(), true
}

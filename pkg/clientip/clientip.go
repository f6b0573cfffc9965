package clientip

import (
	"net"
	"net/http"
	"strings"
)

// HeaderForwardedFor is the proxy header consulted before the peer address.
const HeaderForwardedFor = "X-Forwarded-For"

// GetIP returns the origin address of r.
func GetIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	return Origin(r.Header.Get(HeaderForwardedFor), r.RemoteAddr)
}

// Origin returns the first comma-separated entry of forwardedFor if it is
// non-empty, else remoteAddr without its port, else an empty string.
func Origin(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	return StripPort(remoteAddr)
}

// StripPort removes a trailing ":port" from addr, handling bracketed IPv6.
// Addresses without a port are returned unchanged.
func StripPort(addr string) string {
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

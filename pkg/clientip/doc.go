// Package clientip resolves the origin address of an HTTP request.
//
// The origin is the first entry of the X-Forwarded-For header when the header is
// present, otherwise the peer address with its port removed:
//
//	origin := clientip.GetIP(r)
//
//	// or, when the values come from somewhere other than *http.Request:
//	origin := clientip.Origin(forwardedFor, remoteAddr)
//
// X-Forwarded-For may carry a chain ("client, proxy1, proxy2"); the leftmost entry
// is the original client. Values are not validated as IP addresses: whatever the
// proxy wrote is returned trimmed, so records keep what was actually observed.
//
// Only trust X-Forwarded-For when the service runs behind a proxy that sets it.
package clientip

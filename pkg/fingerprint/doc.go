// Package fingerprint computes stable, versioned digests over an ordered list of
// string components.
//
// Each component is length-prefixed before hashing, so shifting a boundary between
// two adjacent components always produces a different digest:
//
//	fingerprint.Sum("ab", "c") != fingerprint.Sum("a", "bc")
//
// The digest is SHA-256 truncated to 16 bytes (128 bits), hex encoded and prefixed
// with the encoding version, for a fixed 35 character string:
//
//	fp := fingerprint.Sum(userID, date, sessionKey, remoteAddr, userAgent)
//	// v1:3f0c2d9a4b...
//
// Use Valid to check that a stored value has the expected shape before comparing it:
//
//	if !fingerprint.Valid(stored) {
//		return fingerprint.ErrInvalidFingerprint
//	}
//
// Digests are only comparable when the components were passed in the same order.
package fingerprint

package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	// Version prefixes every digest so the encoding can evolve without
	// silently colliding with values produced by an older scheme.
	Version = "v1:"
	// hashLen keeps 128 of the 256 SHA-256 bits.
	hashLen = 16
	// Len is the total length of a digest: 3 bytes of prefix + 32 hex chars.
	Len = len(Version) + hashLen*2
)

// ErrInvalidFingerprint is returned when a value is not a well-formed digest.
var ErrInvalidFingerprint = errors.New("invalid fingerprint format")

// Sum returns the digest of parts in the given order.
// Empty parts are significant: Sum("a", "") differs from Sum("a").
func Sum(parts ...string) string {
	h := sha256.New()
	var prefix [binary.MaxVarintLen64]byte
	for _, p := range parts {
		n := binary.PutUvarint(prefix[:], uint64(len(p)))
		h.Write(prefix[:n])
		h.Write([]byte(p))
	}
	sum := h.Sum(nil)
	return Version + hex.EncodeToString(sum[:hashLen])
}

// Valid reports whether fp looks like a digest produced by Sum.
func Valid(fp string) bool {
	if len(fp) != Len || !strings.HasPrefix(fp, Version) {
		return false
	}
	_, err := hex.DecodeString(fp[len(Version):])
	return err == nil
}

// Equal compares two digests, rejecting malformed values.
func Equal(a, b string) bool {
	return Valid(a) && a == b
}

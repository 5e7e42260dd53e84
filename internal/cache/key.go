package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key returns the cache key for a source text parsed under the given
// options fingerprint.
func Key(source, fingerprint string) string {
	return hashString(fingerprint + "\x00" + source)
}

// Fingerprint joins the option values that change parse output into a
// stable string.
func Fingerprint(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

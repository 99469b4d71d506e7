// Package hashutil computes the content-address digest used to key the
// script cache (C1 in the design).
package hashutil

import "github.com/zeebo/blake3"

// Digest returns the hex-encoded BLAKE3-256 digest of code. It depends
// only on the raw bytes passed in — callers must hash the user's
// original source, never the wrapped form, so the same snippet is
// cached once regardless of show-logs or other wrapping decisions.
func Digest(code []byte) string {
	sum := blake3.Sum256(code)
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0f]
	}
	return string(out)
}

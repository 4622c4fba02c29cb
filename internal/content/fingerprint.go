// Package content implements the pure text processing used by the
// generation pipeline: fingerprinting of accepted content and unwrapping of
// raw model responses. Both are deterministic and free of I/O so they can be
// tested exhaustively.
package content

import (
	"strconv"
	"strings"
)

// Normalize trims the string and collapses every run of whitespace
// (including newlines and tabs) to a single space, so that cosmetically
// reformatted content maps to the same fingerprint.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fingerprint returns a stable digest of the normalized content, rendered
// in base-36. The digest is a 32-bit rolling hash (h = h*31 + codepoint,
// wrapping int32 arithmetic); it is not cryptographic, only collision
// resistant enough to catch repeated generations.
func Fingerprint(s string) string {
	var h int32
	for _, r := range Normalize(s) {
		h = h<<5 - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

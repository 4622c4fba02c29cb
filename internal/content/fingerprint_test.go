package content

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"a b", "a b"},
		{"  a   b  ", "a b"},
		{"a\n\nb\tc", "a b c"},
		{"line1\r\nline2", "line1 line2"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFingerprint_WhitespaceInvariant(t *testing.T) {
	pairs := [][2]string{
		{"seek first the kingdom", "seek   first\nthe\tkingdom"},
		{"a b c", "  a  b  c  "},
		{"Psalm 23:1\nThe Lord is my shepherd", "Psalm 23:1 The Lord is my shepherd"},
	}
	for _, p := range pairs {
		if Fingerprint(p[0]) != Fingerprint(p[1]) {
			t.Errorf("fingerprints differ for whitespace variants %q vs %q", p[0], p[1])
		}
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	const s = "He leads me beside still waters"
	if Fingerprint(s) != Fingerprint(s) {
		t.Fatal("fingerprint not deterministic")
	}
}

func TestFingerprint_NoCollisionsAcrossDistinctInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[string]string, 10000)
	collisions := 0
	for i := 0; i < 10000; i++ {
		s := fmt.Sprintf("candidate %d verse %d word-%d", i, rng.Intn(1<<30), rng.Intn(1<<30))
		fp := Fingerprint(s)
		if prev, ok := seen[fp]; ok && prev != s {
			collisions++
		}
		seen[fp] = s
	}
	// A 32-bit hash over 10k samples should see at most a stray birthday
	// collision; anything more means the hash is broken.
	if collisions > 3 {
		t.Fatalf("too many collisions: %d", collisions)
	}
}

func TestFingerprint_Base36Alphabet(t *testing.T) {
	fp := Fingerprint("content to hash")
	if fp == "" {
		t.Fatal("empty fingerprint")
	}
	for _, r := range fp {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')) {
			t.Fatalf("fingerprint %q contains non-base36 rune %q", fp, r)
		}
	}
}

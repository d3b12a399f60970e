package dtest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandomDataForTest returns sz pseudorandom bytes,
// seeded from the name of the running test.
//
// The same test always sees the same data,
// so a digest mismatch reproduces on every run.
func RandomDataForTest(t *testing.T, sz int) []byte {
	t.Helper()

	// A SHA-256 digest is exactly the size of a ChaCha8 seed,
	// and test names of any length map onto it.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]byte, sz)
	if _, err := chacha.Read(out); err != nil {
		t.Fatalf("failed to read random data: %v", err)
	}

	return out
}

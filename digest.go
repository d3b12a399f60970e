package william3

import (
	"crypto/subtle"
	"encoding/hex"
)

// Size is the size in bytes of a [Digest] or a [Label].
const Size = 32

// Label is the result of a single chunk hash or inner combine.
// A label is either the final digest of a message
// or an operand to a parent combine.
type Label [Size]byte

// String returns the lowercase hex encoding of l.
func (l Label) String() string {
	return hex.EncodeToString(l[:])
}

// Digest is the final output of hashing a message.
//
// Compare digests with [Digest.Equal] when the comparison
// must not leak timing information.
type Digest [Size]byte

// AsBytes returns the raw bytes of d.
// The returned slice does not alias d.
func (d Digest) AsBytes() []byte {
	return d[:]
}

// String returns the canonical text form of d:
// 64 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Equal reports whether d and other are the same digest, in constant time.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d[:], other[:]) == 1
}

// MarshalText implements [encoding.TextMarshaler].
func (d Digest) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(Size))
	hex.Encode(out, d[:])
	return out, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Digest) UnmarshalText(text []byte) error {
	p, err := ParseDigest(string(text))
	if err != nil {
		return err
	}

	*d = p
	return nil
}

// ParseDigest parses the hex encoded digest s.
// Upper and lower case hex are both accepted.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(Size) {
		return d, DigestLengthError{Got: len(s)}
	}

	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, InvalidDigestError{Err: err}
	}

	return d, nil
}

package william3_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gordian-engine/william3"
	"github.com/stretchr/testify/require"
)

func TestDigest_hexRoundTrip(t *testing.T) {
	t.Parallel()

	d := william3.BatchHash([]byte("hello"))
	s := d.String()
	require.Len(t, s, 64)
	require.Equal(t, strings.ToLower(s), s)

	p, err := william3.ParseDigest(s)
	require.NoError(t, err)
	require.True(t, d.Equal(p))

	// Upper case input is accepted, but the canonical form stays lower case.
	p, err = william3.ParseDigest(strings.ToUpper(s))
	require.NoError(t, err)
	require.Equal(t, s, p.String())
}

func TestParseDigest_errors(t *testing.T) {
	t.Parallel()

	_, err := william3.ParseDigest("abcd")
	var lenErr william3.DigestLengthError
	require.ErrorAs(t, err, &lenErr)
	require.Equal(t, 4, lenErr.Got)

	_, err = william3.ParseDigest(strings.Repeat("zz", 32))
	var invErr william3.InvalidDigestError
	require.ErrorAs(t, err, &invErr)
}

func TestDigest_Equal(t *testing.T) {
	t.Parallel()

	var a, b william3.Digest
	require.True(t, a.Equal(b))

	b[31] = 1
	require.False(t, a.Equal(b))
	require.False(t, b.Equal(a))
}

func TestDigest_AsBytes(t *testing.T) {
	t.Parallel()

	d := william3.BatchHash(nil)
	b := d.AsBytes()
	require.Len(t, b, william3.Size)
	require.Equal(t, d[:], b)

	// Writing to the returned slice must not affect the digest.
	b[0] ^= 0xff
	require.NotEqual(t, d[0], b[0])
}

func TestDigest_jsonText(t *testing.T) {
	t.Parallel()

	type record struct {
		Hash william3.Digest `json:"hash"`
	}

	in := record{Hash: william3.BatchHash([]byte("a"))}
	j, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"hash":"b25d11da901aa99501f67721aac02bcef1f3fc67adbada141454f46310ecaa48"}`,
		string(j),
	)

	var out record
	require.NoError(t, json.Unmarshal(j, &out))
	require.Equal(t, in, out)

	require.Error(t, json.Unmarshal([]byte(`{"hash":"00"}`), &out))
}

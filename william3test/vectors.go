// Package william3test contains test helpers and reference data
// for packages that build on [william3].
package william3test

import (
	"bytes"

	"github.com/gordian-engine/william3"
)

// Vector is a known input and its expected hex digest.
type Vector struct {
	Description string
	Input       []byte
	Hex         string
}

// PublishedVectors returns the published WILLIAM3 test vectors.
//
// They all fit in a single chunk, so they hold for every [william3.Shape].
func PublishedVectors() []Vector {
	return []Vector{
		{
			Description: "empty string",
			Input:       []byte{},
			Hex:         "3b638fc8f2fb68418325a36b4718ffb07de457ac301393a845466a79eea3286b",
		},
		{
			Description: "single character",
			Input:       []byte("a"),
			Hex:         "b25d11da901aa99501f67721aac02bcef1f3fc67adbada141454f46310ecaa48",
		},
		{
			Description: "hello",
			Input:       []byte("hello"),
			Hex:         "14cbee0d4b33e33431dbeb2cc8d5eb54204c256315f34f4d7bac151b9696c3d3",
		},
		{
			Description: "hello world",
			Input:       []byte("hello world"),
			Hex:         "5d70555767754cbd71ad5b999ecf71bedb6141a75687c20350c9968ac484fbd2",
		},
		{
			Description: "BLAKE3",
			Input:       []byte("BLAKE3"),
			Hex:         "4f35ef04663e51012a11ecfa6039f1ffb1d7382e89bb5cc9a783187fa7f2d904",
		},
		{
			Description: "WILLIAM3",
			Input:       []byte("WILLIAM3"),
			Hex:         "8e136e0ed3eae636a47c55fe80e12541775067baaafa4d7089b2234746cffc8a",
		},
	}
}

// FoxText is the 1960-byte, two chunk message
// used when comparing independent implementations.
func FoxText() []byte {
	return bytes.Repeat(
		[]byte("The quick brown fox jumps over the lazy dog. This is a longer text that will span multiple chunks."),
		20,
	)
}

// PrintableASCII returns the 95 printable ASCII characters, space through tilde.
func PrintableASCII() []byte {
	out := make([]byte, 0, 95)
	for c := byte(' '); c <= '~'; c++ {
		out = append(out, c)
	}
	return out
}

// TwoChunkVectors returns regression vectors for messages of at most two chunks,
// which hash identically under every [william3.Shape].
func TwoChunkVectors() []Vector {
	return []Vector{
		{
			Description: "256 bytes of 'a'",
			Input:       bytes.Repeat([]byte("a"), 256),
			Hex:         "746e003a2b74af838d4a9138b9b299bd8a957759d9db61454f823c204c705759",
		},
		{
			Description: "1024 bytes of 'b'",
			Input:       bytes.Repeat([]byte("b"), 1024),
			Hex:         "f9a2064ddbb66b57791fc4fb9ec76454c7ac38fa3fd639f283ad2969a32d95c5",
		},
		{
			Description: "1025 bytes (crosses chunk boundary)",
			Input:       bytes.Repeat([]byte("x"), 1025),
			Hex:         "48d0e32a74025a3b4018bc1f35189910eba498a8e95a87faf79b28aafc1d9d97",
		},
		{
			Description: "2048 bytes",
			Input:       bytes.Repeat([]byte("c"), 2048),
			Hex:         "6fecee76fb3a10ec9f9a7f23d1bcff75d5c3b35ec5af94b7fbab2550df49143b",
		},
		{
			Description: "all ASCII printable chars",
			Input:       PrintableASCII(),
			Hex:         "3a62c126eaa16117f89ca8df72a38169a84171a8c1fe9899518a0b0bd088b7c8",
		},
		{
			Description: "multiple chunks",
			Input:       FoxText(),
			Hex:         "242b26d2864ef39953d405dbe8a32bb131fc0730451eb8386f16156cdf28c91d",
		},
	}
}

// PatternData returns sz bytes where byte i is i mod 251.
// The prime modulus keeps the pattern from aligning with chunk or block boundaries.
func PatternData(sz int) []byte {
	out := make([]byte, sz)
	for i := range out {
		out[i] = byte(i % 251)
	}
	return out
}

// DeepVectors returns regression vectors over [PatternData]
// for messages of three or more chunks, where the shapes diverge.
func DeepVectors(s william3.Shape) []Vector {
	type pair struct {
		sz           int
		fold, lcTree string
	}
	pairs := []pair{
		{
			sz:     3*1024 + 100,
			fold:   "068cb28a6f34bb063b5908f7474d61f5547166f2c16b4cb72c63c6f5e0b0a6b4",
			lcTree: "605c9dd1cb8bd5cb39398d404b972e94f038b436c4dece06f105320eb8b8e588",
		},
		{
			sz:     5 * 1024,
			fold:   "e96e963161fcb0098497b235a436488a36ab268cf6f23f13021712c0abdde4c7",
			lcTree: "2b3d35ad00af7a69f39fda7877acf8cf0dc5bc72a94bfcbaab3ba04fae7b7720",
		},
		{
			sz:     7*1024 + 1,
			fold:   "185ab4c8ff9a0ecc1a333e952a32954aac3648f505b2109f102131489abe2f64",
			lcTree: "9a529b37505c2b08667237f729137baa9617c1a6fb3830b7e69bb84924f10dff",
		},
		{
			sz:     8 * 1024,
			fold:   "21d2ad9a7bdbd9ab2ea1023f43f0eb0be6b1faa32f9683d6c0edb5d18c2dc9bf",
			lcTree: "17a8aeac40c506659327808e3b8502326669cd4557426ec7f6afb9dcdf2c3106",
		},
	}

	out := make([]Vector, len(pairs))
	for i, p := range pairs {
		h := p.fold
		if s == william3.ShapeLeftComplete {
			h = p.lcTree
		}
		out[i] = Vector{
			Description: s.String() + " pattern",
			Input:       PatternData(p.sz),
			Hex:         h,
		}
	}
	return out
}

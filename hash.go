package william3

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gordian-engine/william3/internal/w3compress"
)

// HashChunk returns the label of a single chunk.
//
// The data must be at most [ChunkSize] bytes; zero bytes is valid.
// Set isRoot only when data is the entire message.
//
// HashChunk panics if data is too long or if ctx is the zero value,
// as both indicate a bug in the caller.
func HashChunk(data []byte, isRoot bool, ctx ChunkContext) Label {
	if len(data) > ChunkSize {
		panic(fmt.Errorf(
			"BUG: chunk must be at most %d bytes (got %d)",
			ChunkSize, len(data),
		))
	}
	if ctx.IsZero() {
		panic(errors.New("BUG: HashChunk called with zero ChunkContext; use DefaultChunkContext"))
	}

	flags := ctx.flags
	if isRoot {
		flags |= w3compress.Root
	}

	var l Label
	w3compress.PutWords(l[:], w3compress.Hash1(ctx.cv, data, flags))
	return l
}

// innerInputSize is the length of the HashInner preimage:
// two labels and a little endian uint64 length.
const innerInputSize = 2*Size + 8

// HashInner returns the label of the parent of left and right.
//
// The totalLength is bound into the preimage bit for bit.
// Under [ShapeLeftFold] it is always the length of the entire message,
// even for interior combines.
// Set isRoot only for the single combine that yields the message digest.
//
// HashInner panics if ctx is the zero value.
func HashInner(left, right Label, totalLength uint64, isRoot bool, ctx InnerContext) Label {
	if ctx.IsZero() {
		panic(errors.New("BUG: HashInner called with zero InnerContext; use DefaultInnerContext"))
	}

	var in [innerInputSize]byte
	copy(in[:Size], left[:])
	copy(in[Size:2*Size], right[:])
	binary.LittleEndian.PutUint64(in[2*Size:], totalLength)

	flags := ctx.flags
	if isRoot {
		flags |= w3compress.Root
	}

	var l Label
	w3compress.PutWords(l[:], w3compress.Hash1(ctx.cv, in[:], flags))
	return l
}

package william3_test

import (
	"bytes"
	"testing"

	"github.com/gordian-engine/william3"
	"github.com/stretchr/testify/require"
)

func TestHashChunk_empty(t *testing.T) {
	t.Parallel()

	// No block is compressed for an empty chunk,
	// so the root label is the little endian initial chaining value.
	l := william3.HashChunk(nil, true, william3.DefaultChunkContext())
	require.Equal(t,
		"3b638fc8f2fb68418325a36b4718ffb07de457ac301393a845466a79eea3286b",
		l.String(),
	)

	// The root flag has nothing to apply to.
	require.Equal(t, l, william3.HashChunk([]byte{}, false, william3.DefaultChunkContext()))
}

func TestHashChunk_hello(t *testing.T) {
	t.Parallel()

	l := william3.HashChunk([]byte("hello"), true, william3.DefaultChunkContext())
	require.Equal(t,
		"14cbee0d4b33e33431dbeb2cc8d5eb54204c256315f34f4d7bac151b9696c3d3",
		l.String(),
	)
}

func TestHashChunk_rootFlag(t *testing.T) {
	t.Parallel()

	ctx := william3.DefaultChunkContext()
	for _, sz := range []int{1, 64, 65, 1024} {
		in := bytes.Repeat([]byte{0xa5}, sz)
		require.NotEqual(t,
			william3.HashChunk(in, true, ctx),
			william3.HashChunk(in, false, ctx),
			"size %d", sz,
		)
	}
}

func TestHashChunk_panics(t *testing.T) {
	t.Parallel()

	t.Run("too long", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			_ = william3.HashChunk(make([]byte, william3.ChunkSize+1), false, william3.DefaultChunkContext())
		})
	})

	t.Run("zero context", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			_ = william3.HashChunk([]byte("x"), false, william3.ChunkContext{})
		})
	})
}

func TestHashInner_bindsInputs(t *testing.T) {
	t.Parallel()

	ctx := william3.DefaultInnerContext()
	cctx := william3.DefaultChunkContext()
	a := william3.HashChunk([]byte("left"), false, cctx)
	b := william3.HashChunk([]byte("right"), false, cctx)

	base := william3.HashInner(a, b, 2048, false, ctx)
	require.Equal(t, base, william3.HashInner(a, b, 2048, false, ctx))

	require.NotEqual(t, base, william3.HashInner(b, a, 2048, false, ctx), "operand order")
	require.NotEqual(t, base, william3.HashInner(a, b, 2049, false, ctx), "length")
	require.NotEqual(t, base, william3.HashInner(a, b, 2048, true, ctx), "root flag")

	// A length differing only in the high byte still changes the label.
	require.NotEqual(t, base, william3.HashInner(a, b, 2048|1<<56, false, ctx), "high length byte")

	// The length is bound into root labels too.
	root := william3.HashInner(a, b, 2048, true, ctx)
	require.NotEqual(t, root, william3.HashInner(a, b, 2049, true, ctx), "root length")
	require.NotEqual(t, root, william3.HashInner(a, b, 2048|1<<56, true, ctx), "root high length byte")
}

func TestHashInner_notAChunk(t *testing.T) {
	t.Parallel()

	// The same 72 bytes hashed as a chunk carry different flags.
	cctx := william3.DefaultChunkContext()
	a := william3.HashChunk([]byte("left"), false, cctx)
	b := william3.HashChunk([]byte("right"), false, cctx)

	pre := make([]byte, 0, 72)
	pre = append(pre, a[:]...)
	pre = append(pre, b[:]...)
	pre = append(pre, 0, 8, 0, 0, 0, 0, 0, 0)

	require.NotEqual(t,
		william3.HashChunk(pre, false, cctx),
		william3.HashInner(a, b, 2048, false, william3.DefaultInnerContext()),
	)
}

func TestHashInner_zeroContextPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = william3.HashInner(william3.Label{}, william3.Label{}, 0, false, william3.InnerContext{})
	})
}

func TestContexts_IsZero(t *testing.T) {
	t.Parallel()

	require.True(t, william3.ChunkContext{}.IsZero())
	require.False(t, william3.DefaultChunkContext().IsZero())
	require.True(t, william3.InnerContext{}.IsZero())
	require.False(t, william3.DefaultInnerContext().IsZero())
}

func TestHashChunk_trailingZerosMatchPadding(t *testing.T) {
	t.Parallel()

	// The block length is always 64 and the final block is zero padded,
	// so a chunk's label does not depend on trailing zero bytes within its last block.
	// Multi-chunk messages still differ through the bound length.
	ctx := william3.DefaultChunkContext()
	require.Equal(t,
		william3.HashChunk([]byte("a"), true, ctx),
		william3.HashChunk([]byte("a\x00\x00"), true, ctx),
	)
	require.NotEqual(t,
		william3.HashChunk([]byte("a"), true, ctx),
		william3.HashChunk(append(make([]byte, 64), 'a'), true, ctx),
	)
}

package w3proof_test

import (
	"fmt"
	"testing"

	"github.com/gordian-engine/william3"
	"github.com/gordian-engine/william3/w3proof"
	"github.com/gordian-engine/william3/william3test"
	"github.com/stretchr/testify/require"
)

var allShapes = []william3.Shape{william3.ShapeLeftFold, william3.ShapeLeftComplete}

// testSizes covers single chunk messages, exact powers of two,
// and uneven final chunks.
var testSizes = []int{0, 1, 1024, 1025, 2048, 3000, 4096, 5*1024 + 9, 8 * 1024, 11*1024 + 1}

func shapeConfig(s william3.Shape) william3.ReducerConfig {
	cfg := william3.DefaultReducerConfig()
	cfg.Shape = s
	return cfg
}

func TestBuild_rootMatchesReducer(t *testing.T) {
	t.Parallel()

	for _, s := range allShapes {
		for _, workers := range []int{0, 4} {
			cfg := shapeConfig(s)
			cfg.Workers = workers

			for _, sz := range testSizes {
				in := william3test.PatternData(sz)
				tree := w3proof.Build(in, cfg)

				require.Equal(t, william3.NewReducer(cfg).Reduce(in), tree.Root(), "%s size %d", s, sz)
				require.Equal(t, william3.NumChunks(uint64(sz)), tree.NumChunks())
				require.Equal(t, uint64(sz), tree.Length())
			}
		}
	}
}

func TestTree_Proof_siblingCount(t *testing.T) {
	t.Parallel()

	for _, s := range allShapes {
		for _, sz := range testSizes {
			in := william3test.PatternData(sz)
			tree := w3proof.Build(in, shapeConfig(s))

			for idx := range tree.NumChunks() {
				p := tree.Proof(idx)
				require.Equal(t, idx, p.Index)
				require.Len(t, p.Siblings, len(s.Path(uint64(sz), idx)), "%s size %d chunk %d", s, sz, idx)
			}
		}
	}
}

func TestTree_Proof_leftFoldFirstSibling(t *testing.T) {
	t.Parallel()

	// Under left fold, the last chunk's only sibling
	// is the accumulated label of every earlier chunk.
	in := william3test.PatternData(3*1024 + 5)
	tree := w3proof.Build(in, william3.DefaultReducerConfig())

	p := tree.Proof(3)
	require.Len(t, p.Siblings, 1)

	cctx := william3.DefaultChunkContext()
	ictx := william3.DefaultInnerContext()
	want := william3.HashInner(
		tree.ChunkLabel(0), tree.ChunkLabel(1), uint64(len(in)), false, ictx,
	)
	want = william3.HashInner(want, tree.ChunkLabel(2), uint64(len(in)), false, ictx)
	require.Equal(t, want, p.Siblings[0])

	require.Equal(t, william3.HashChunk(in[3*1024:], false, cctx), tree.ChunkLabel(3))
}

func TestTree_Proof_outOfRange(t *testing.T) {
	t.Parallel()

	tree := w3proof.Build(make([]byte, 2048), william3.DefaultReducerConfig())
	require.Panics(t, func() { _ = tree.Proof(2) })
}

func TestBuild_invalidConfig(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = w3proof.Build([]byte("x"), william3.ReducerConfig{})
	})
}

func BenchmarkBuild(b *testing.B) {
	for _, s := range allShapes {
		in := william3test.PatternData(256 * 1024)
		b.Run(fmt.Sprint(s), func(b *testing.B) {
			b.SetBytes(int64(len(in)))
			for range b.N {
				_ = w3proof.Build(in, shapeConfig(s))
			}
		})
	}
}

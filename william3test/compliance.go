package william3test

import (
	"testing"

	"github.com/gordian-engine/william3"
	"github.com/stretchr/testify/require"
)

// ReducerFactory returns a new Reducer to check.
type ReducerFactory func() *william3.Reducer

// TestReducerCompliance checks the structural properties
// that every WILLIAM3 reducer must satisfy, whatever its configuration.
func TestReducerCompliance(t *testing.T, f ReducerFactory) {
	t.Run("reduce is deterministic", func(t *testing.T) {
		t.Parallel()

		r := f()
		for _, sz := range []int{0, 1, 1024, 1025, 5000} {
			in := PatternData(sz)
			require.Equal(t, r.Reduce(in), r.Reduce(in), "size %d", sz)
		}
	})

	t.Run("single chunk is its own root", func(t *testing.T) {
		t.Parallel()

		r := f()
		cfg := r.Config()
		for _, sz := range []int{0, 1, 64, 65, 1023, 1024} {
			in := PatternData(sz)
			want := william3.Digest(william3.HashChunk(in, true, cfg.ChunkContext))
			require.Equal(t, want, r.Reduce(in), "size %d", sz)
		}
	})

	t.Run("chunk boundary splits", func(t *testing.T) {
		t.Parallel()

		r := f()
		cfg := r.Config()

		in := PatternData(1025)
		single := r.Reduce(in[:1024])
		split := r.Reduce(in)
		require.NotEqual(t, single, split)

		left := william3.HashChunk(in[:1024], false, cfg.ChunkContext)
		right := william3.HashChunk(in[1024:], false, cfg.ChunkContext)
		want := william3.HashInner(left, right, 1025, true, cfg.InnerContext)
		require.Equal(t, william3.Digest(want), split)
	})

	t.Run("two chunk composition", func(t *testing.T) {
		t.Parallel()

		r := f()
		cfg := r.Config()

		in := FoxText()
		require.Len(t, in, 1960)

		left := william3.HashChunk(in[:1024], false, cfg.ChunkContext)
		right := william3.HashChunk(in[1024:], false, cfg.ChunkContext)
		want := william3.HashInner(left, right, 1960, true, cfg.InnerContext)
		require.Equal(t, william3.Digest(want), r.Reduce(in))
	})

	t.Run("reduce follows the merge plan", func(t *testing.T) {
		t.Parallel()

		r := f()
		cfg := r.Config()
		for _, sz := range []int{2049, 3 * 1024, 4*1024 + 7, 6 * 1024, 7*1024 + 1, 9 * 1024, 17*1024 - 1} {
			in := PatternData(sz)
			require.Equal(t, ReduceWithPlan(in, cfg), r.Reduce(in), "size %d", sz)
		}
	})

	t.Run("one byte changes the digest", func(t *testing.T) {
		t.Parallel()

		r := f()
		for _, sz := range []int{1, 1024, 3000} {
			in := PatternData(sz)
			orig := r.Reduce(in)

			in[sz-1] ^= 0x80
			require.NotEqual(t, orig, r.Reduce(in), "size %d", sz)
		}
	})
}

// ReduceWithPlan computes the digest of data
// by materializing every node of the plan returned by [william3.Shape.Merges].
//
// It is a slow, obviously correct counterpart to [*william3.Reducer.Reduce].
func ReduceWithPlan(data []byte, cfg william3.ReducerConfig) william3.Digest {
	length := uint64(len(data))
	n := william3.NumChunks(length)
	if n == 1 {
		return william3.Digest(william3.HashChunk(data, true, cfg.ChunkContext))
	}

	merges := cfg.Shape.Merges(length)
	nodes := make([]william3.Label, n, n+uint64(len(merges)))
	for i := range nodes {
		lo := i * william3.ChunkSize
		hi := min(lo+william3.ChunkSize, len(data))
		nodes[i] = william3.HashChunk(data[lo:hi], false, cfg.ChunkContext)
	}

	for _, m := range merges {
		nodes = append(nodes, william3.HashInner(
			nodes[m.Left], nodes[m.Right], m.Length, m.IsRoot, cfg.InnerContext,
		))
	}

	return william3.Digest(nodes[len(nodes)-1])
}

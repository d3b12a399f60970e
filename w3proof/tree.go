package w3proof

import (
	"fmt"
	"sync"

	"github.com/gordian-engine/william3"
)

// Proof is the evidence that one chunk belongs to a message.
type Proof struct {
	// Index of the chunk this proof is for.
	Index uint64

	// Sibling labels ordered from the chunk up to the root.
	// Empty for single chunk messages.
	Siblings []william3.Label
}

// Tree holds every label of a hashed message,
// so that proofs can be produced for any chunk.
//
// A Tree is immutable after [Build] returns
// and may be shared across goroutines.
type Tree struct {
	length uint64
	n      uint64

	// Chunk labels first, then one label per merge in plan order.
	nodes []william3.Label

	merges []william3.Merge

	// Index into merges of the merge consuming each node.
	// The root has no parent and is absent.
	parents []uint64
}

// Build hashes data with cfg and retains every label.
// It panics if cfg is invalid, exactly like [william3.NewReducer].
//
// The root of the returned tree always equals
// the digest from a Reducer with the same cfg.
func Build(data []byte, cfg william3.ReducerConfig) *Tree {
	// Validates cfg.
	cfg = william3.NewReducer(cfg).Config()

	length := uint64(len(data))
	n := william3.NumChunks(length)

	t := &Tree{
		length: length,
		n:      n,
		nodes:  make([]william3.Label, 2*n-1),
	}

	if n == 1 {
		t.nodes[0] = william3.HashChunk(data, true, cfg.ChunkContext)
		return t
	}

	hashChunks(data, t.nodes[:n], cfg)

	t.merges = cfg.Shape.Merges(length)
	t.parents = make([]uint64, n+uint64(len(t.merges))-1)
	for k, m := range t.merges {
		t.nodes[n+uint64(k)] = william3.HashInner(
			t.nodes[m.Left], t.nodes[m.Right], m.Length, m.IsRoot, cfg.InnerContext,
		)
		t.parents[m.Left] = uint64(k)
		t.parents[m.Right] = uint64(k)
	}

	return t
}

// hashChunks writes the non-root label of every chunk of data into dst,
// spreading the work over cfg.Workers goroutines.
func hashChunks(data []byte, dst []william3.Label, cfg william3.ReducerConfig) {
	hash := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			start := i * william3.ChunkSize
			end := min(start+william3.ChunkSize, len(data))
			dst[i] = william3.HashChunk(data[start:end], false, cfg.ChunkContext)
		}
	}

	if cfg.Workers <= 1 {
		hash(0, len(dst))
		return
	}

	span := (len(dst) + cfg.Workers - 1) / cfg.Workers

	var wg sync.WaitGroup
	for lo := 0; lo < len(dst); lo += span {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			hash(lo, hi)
		}(lo, min(lo+span, len(dst)))
	}
	wg.Wait()
}

// Root returns the digest of the message.
func (t *Tree) Root() william3.Digest {
	return william3.Digest(t.nodes[len(t.nodes)-1])
}

// NumChunks returns the number of chunks in the message.
func (t *Tree) NumChunks() uint64 {
	return t.n
}

// Length returns the byte length of the message.
func (t *Tree) Length() uint64 {
	return t.length
}

// ChunkLabel returns the non-root label of chunk idx.
// For a single chunk message, it is instead the root label.
func (t *Tree) ChunkLabel(idx uint64) william3.Label {
	t.checkIndex(idx)
	return t.nodes[idx]
}

// Proof returns the inclusion proof for chunk idx.
// It panics if idx is out of range.
func (t *Tree) Proof(idx uint64) Proof {
	t.checkIndex(idx)

	p := Proof{Index: idx}
	if t.n == 1 {
		return p
	}

	root := uint64(len(t.nodes) - 1)
	for node := idx; node != root; {
		k := t.parents[node]
		m := t.merges[k]

		sib := m.Left
		if sib == node {
			sib = m.Right
		}
		p.Siblings = append(p.Siblings, t.nodes[sib])

		node = t.n + k
	}

	return p
}

func (t *Tree) checkIndex(idx uint64) {
	if idx >= t.n {
		panic(fmt.Errorf(
			"BUG: chunk index %d out of range for %d chunks", idx, t.n,
		))
	}
}

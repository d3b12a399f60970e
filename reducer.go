package william3

import (
	"errors"
	"fmt"
	"sync"
)

// ReducerConfig is the configuration for a [Reducer].
type ReducerConfig struct {
	ChunkContext ChunkContext
	InnerContext InnerContext

	// How chunk labels are paired.
	// The zero value is [ShapeLeftFold].
	Shape Shape

	// Number of goroutines hashing chunks concurrently.
	// Zero or one hashes every chunk on the calling goroutine.
	// The digest does not depend on this value.
	Workers int
}

// DefaultReducerConfig returns the configuration used by [BatchHash].
func DefaultReducerConfig() ReducerConfig {
	return ReducerConfig{
		ChunkContext: DefaultChunkContext(),
		InnerContext: DefaultInnerContext(),
		Shape:        ShapeLeftFold,
	}
}

// validate panics if there are any illegal settings in the configuration.
func (c ReducerConfig) validate() {
	// Collect every problem so the panic is maximally helpful.
	var panicErrs error

	if c.ChunkContext.IsZero() {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("ReducerConfig.ChunkContext must be set (use DefaultChunkContext)"),
		)
	}

	if c.InnerContext.IsZero() {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("ReducerConfig.InnerContext must be set (use DefaultInnerContext)"),
		)
	}

	if !c.Shape.Valid() {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("ReducerConfig.Shape has unknown value %d", uint8(c.Shape)),
		)
	}

	if c.Workers < 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("ReducerConfig.Workers must not be negative (got %d)", c.Workers),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// Reducer turns a whole message into its [Digest].
//
// A Reducer holds no mutable state,
// so a single Reducer may be used from many goroutines.
type Reducer struct {
	cfg ReducerConfig
}

// NewReducer returns a new Reducer.
// It panics if cfg is invalid.
func NewReducer(cfg ReducerConfig) *Reducer {
	cfg.validate()
	return &Reducer{cfg: cfg}
}

// Config returns a copy of the configuration r was created with.
func (r *Reducer) Config() ReducerConfig {
	return r.cfg
}

// chunksPerWorker is how many chunks each worker hashes
// before the window is folded.
// This bounds the label buffer to Workers*chunksPerWorker labels.
const chunksPerWorker = 64

// Reduce returns the digest of data.
func (r *Reducer) Reduce(data []byte) Digest {
	if len(data) <= ChunkSize {
		// Includes the empty message.
		return Digest(HashChunk(data, true, r.cfg.ChunkContext))
	}

	length := uint64(len(data))
	n := NumChunks(length)
	f := r.newFolder(length, n)

	if r.cfg.Workers <= 1 {
		for i := uint64(0); i < n; i++ {
			c := chunkAt(data, i)
			f.Push(HashChunk(c, false, r.cfg.ChunkContext), uint64(len(c)))
		}
		return Digest(f.Root())
	}

	r.reduceParallel(data, n, f)
	return Digest(f.Root())
}

// reduceParallel hashes chunks in windows spread over the configured workers,
// pushing each window into f in chunk order.
func (r *Reducer) reduceParallel(data []byte, n uint64, f folder) {
	workers := uint64(r.cfg.Workers)
	windowSize := workers * chunksPerWorker
	labels := make([]Label, min(windowSize, n))

	var wg sync.WaitGroup
	for start := uint64(0); start < n; start += windowSize {
		end := min(start+windowSize, n)
		window := labels[:end-start]

		// Contiguous, nearly equal spans per worker.
		span := (uint64(len(window)) + workers - 1) / workers
		for lo := uint64(0); lo < uint64(len(window)); lo += span {
			hi := min(lo+span, uint64(len(window)))

			wg.Add(1)
			go func(lo, hi uint64) {
				defer wg.Done()
				for j := lo; j < hi; j++ {
					window[j] = HashChunk(chunkAt(data, start+j), false, r.cfg.ChunkContext)
				}
			}(lo, hi)
		}
		wg.Wait()

		for j, l := range window {
			f.Push(l, uint64(len(chunkAt(data, start+uint64(j)))))
		}
	}
}

// chunkAt returns chunk i of data, which must be in range.
func chunkAt(data []byte, i uint64) []byte {
	lo := i * ChunkSize
	hi := min(lo+ChunkSize, uint64(len(data)))
	return data[lo:hi]
}

func (r *Reducer) newFolder(length, n uint64) folder {
	switch r.cfg.Shape {
	case ShapeLeftFold:
		return &leftFold{
			ctx:     r.cfg.InnerContext,
			length:  length,
			nChunks: n,
		}
	case ShapeLeftComplete:
		return &leftComplete{
			ctx:     r.cfg.InnerContext,
			nChunks: n,
			stack:   make([]subtree, 0, 64),
		}
	default:
		panic(fmt.Errorf("BUG: unknown shape %d", uint8(r.cfg.Shape)))
	}
}

// folder consumes chunk labels in order and produces the root label.
// It is only used for messages of at least two chunks.
type folder interface {
	// Push adds the label of the next chunk, whose byte length is chunkLen.
	Push(l Label, chunkLen uint64)

	// Root returns the root label after every chunk has been pushed.
	Root() Label
}

type leftFold struct {
	ctx InnerContext

	length  uint64
	nChunks uint64
	pushed  uint64

	acc Label
}

func (f *leftFold) Push(l Label, _ uint64) {
	f.pushed++
	if f.pushed == 1 {
		f.acc = l
		return
	}

	// The one root-marked operation is the combine with the last chunk.
	f.acc = HashInner(f.acc, l, f.length, f.pushed == f.nChunks, f.ctx)
}

func (f *leftFold) Root() Label {
	if f.pushed != f.nChunks {
		panic(fmt.Errorf(
			"BUG: Root called after %d of %d chunks", f.pushed, f.nChunks,
		))
	}
	return f.acc
}

// subtree is a completed left-complete subtree on the chaining value stack.
type subtree struct {
	label  Label
	length uint64
}

// leftComplete is the BLAKE3 chaining value stack:
// completed power-of-two subtrees are merged as soon as they exist,
// and the final chunk collapses the stack from right to left.
type leftComplete struct {
	ctx InnerContext

	nChunks uint64
	pushed  uint64

	stack []subtree
	root  Label
}

func (f *leftComplete) Push(l Label, chunkLen uint64) {
	f.pushed++
	cur := subtree{label: l, length: chunkLen}

	if f.pushed == f.nChunks {
		for j := len(f.stack) - 1; j >= 0; j-- {
			cur = f.merge(f.stack[j], cur, j == 0)
		}
		f.stack = f.stack[:0]
		f.root = cur.label
		return
	}

	// Each trailing zero bit in the count of pushed chunks
	// is one completed subtree to merge.
	for total := f.pushed; total&1 == 0; total >>= 1 {
		left := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		cur = f.merge(left, cur, false)
	}
	f.stack = append(f.stack, cur)
}

func (f *leftComplete) merge(left, right subtree, isRoot bool) subtree {
	length := left.length + right.length
	return subtree{
		label:  HashInner(left.label, right.label, length, isRoot, f.ctx),
		length: length,
	}
}

func (f *leftComplete) Root() Label {
	if f.pushed != f.nChunks {
		panic(fmt.Errorf(
			"BUG: Root called after %d of %d chunks", f.pushed, f.nChunks,
		))
	}
	return f.root
}

package w3proof

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/william3"
	"github.com/gordian-engine/william3/internal/dbitset"
	"github.com/gordian-engine/william3/internal/dtrace"
)

// VerifierConfig is the configuration for [NewVerifier].
type VerifierConfig struct {
	// The expected digest of the whole message.
	Root william3.Digest

	// The byte length of the whole message.
	Length uint64

	// Must match the configuration the sender built its [Tree] with.
	// Workers is ignored.
	Reducer william3.ReducerConfig

	// Optional; defaults to a no-op provider.
	TracerProvider dtrace.TracerProvider
}

// Verifier checks chunks of a message against a known root digest,
// and tracks which chunks have been confirmed.
//
// A Verifier is safe for concurrent use.
type Verifier struct {
	log *slog.Logger

	tracer dtrace.Tracer

	root   william3.Digest
	length uint64
	n      uint64

	shape    william3.Shape
	chunkCtx william3.ChunkContext
	innerCtx william3.InnerContext

	mu       sync.Mutex
	verified *bitset.BitSet

	// Codec state, guarded by mu.
	enc dbitset.AdaptiveEncoder
	dec dbitset.AdaptiveDecoder
}

// NewVerifier returns a new Verifier.
// It panics if cfg.Reducer is invalid.
func NewVerifier(log *slog.Logger, cfg VerifierConfig) *Verifier {
	rc := william3.NewReducer(cfg.Reducer).Config()

	n := william3.NumChunks(cfg.Length)
	if uint64(uint(n)) != n {
		panic(fmt.Errorf(
			"BUG: message of %d chunks is too large to track", n,
		))
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = dtrace.NopTracerProvider()
	}

	return &Verifier{
		log: log,

		tracer: tp.Tracer(dtrace.TracerName),

		root:   cfg.Root,
		length: cfg.Length,
		n:      n,

		shape:    rc.Shape,
		chunkCtx: rc.ChunkContext,
		innerCtx: rc.InnerContext,

		verified: bitset.MustNew(uint(n)),
	}
}

// NumChunks returns the number of chunks in the message.
func (v *Verifier) NumChunks() uint64 {
	return v.n
}

// VerifyChunk checks that chunk is chunk idx of the message,
// using the sibling labels in proof.
// On success the chunk is marked verified.
// Verifying an already verified chunk again is not an error.
//
// The returned error is one of the error types in this package.
func (v *Verifier) VerifyChunk(idx uint64, chunk []byte, proof Proof) error {
	return v.VerifyChunkContext(context.Background(), idx, chunk, proof)
}

// VerifyChunkContext is like [*Verifier.VerifyChunk],
// recording the verification as a span under ctx.
// Verification never blocks, so ctx is not checked for cancellation.
func (v *Verifier) VerifyChunkContext(
	ctx context.Context, idx uint64, chunk []byte, proof Proof,
) error {
	_, span := v.tracer.Start(
		ctx,
		"verify chunk",
		dtrace.WithAttributes(
			dtrace.ChunkIndexAttr(idx),
			dtrace.ChunkCountAttr(v.n),
			dtrace.HexAttr("william3.root", v.root[:]),
		),
	)
	defer span.End()

	if err := v.verifyChunk(idx, chunk, proof); err != nil {
		span.AddEvent("chunk rejected", dtrace.WithAttributes(dtrace.ErrorAttr(err)))
		dtrace.SpanError(span, err)
		return err
	}
	return nil
}

func (v *Verifier) verifyChunk(idx uint64, chunk []byte, proof Proof) error {
	if idx >= v.n {
		return ChunkIndexError{Index: idx, NumChunks: v.n}
	}

	if proof.Index != idx {
		return ProofIndexError{Want: idx, Got: proof.Index}
	}

	if want := william3.ChunkLen(v.length, idx); uint64(len(chunk)) != want {
		return ChunkLengthError{Index: idx, Want: want, Got: uint64(len(chunk))}
	}

	d, err := v.computeRoot(idx, chunk, proof.Siblings)
	if err != nil {
		return err
	}

	if !d.Equal(v.root) {
		v.log.Debug(
			"Chunk failed verification",
			"idx", idx,
			"want_root", v.root,
			"got_root", d,
		)
		return RootMismatchError{Index: idx, Want: v.root, Got: d}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.verified.Set(uint(idx))

	v.log.Debug("Verified chunk", "idx", idx, "verified", v.verified.Count(), "total", v.n)
	return nil
}

// computeRoot returns the root digest implied by a chunk and its siblings.
func (v *Verifier) computeRoot(
	idx uint64, chunk []byte, siblings []william3.Label,
) (william3.Digest, error) {
	if v.n == 1 {
		if len(siblings) != 0 {
			return william3.Digest{}, ProofLengthError{Want: 0, Got: len(siblings)}
		}
		return william3.Digest(william3.HashChunk(chunk, true, v.chunkCtx)), nil
	}

	path := v.shape.Path(v.length, idx)
	if len(siblings) != len(path) {
		return william3.Digest{}, ProofLengthError{Want: len(path), Got: len(siblings)}
	}

	cur := william3.HashChunk(chunk, false, v.chunkCtx)
	for i, st := range path {
		if st.SiblingLeft {
			cur = william3.HashInner(siblings[i], cur, st.Length, st.IsRoot, v.innerCtx)
		} else {
			cur = william3.HashInner(cur, siblings[i], st.Length, st.IsRoot, v.innerCtx)
		}
	}

	return william3.Digest(cur), nil
}

// Verified reports whether chunk idx has been verified.
// It returns false for out of range indices.
func (v *Verifier) Verified(idx uint64) bool {
	if idx >= v.n {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.verified.Test(uint(idx))
}

// Complete reports whether every chunk has been verified.
func (v *Verifier) Complete() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.verified.All()
}

// Missing returns the indices of all chunks not yet verified, in ascending order.
func (v *Verifier) Missing() []uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]uint64, 0, v.n-uint64(v.verified.Count()))
	for i, ok := v.verified.NextClear(0); ok && uint64(i) < v.n; i, ok = v.verified.NextClear(i + 1) {
		out = append(out, uint64(i))
	}
	return out
}

// progressHeaderSize is the root digest followed by the big endian message length.
const progressHeaderSize = william3.Size + 8

// SaveProgress writes the set of verified chunks to w,
// along with the root and length it applies to.
func (v *Verifier) SaveProgress(w io.Writer) error {
	var hdr [progressHeaderSize]byte
	copy(hdr[:], v.root[:])
	binary.BigEndian.PutUint64(hdr[william3.Size:], v.length)

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("failed to write progress header: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.enc.WriteBitset(w, v.verified); err != nil {
		return fmt.Errorf("failed to write verified chunks: %w", err)
	}

	v.log.Info("Saved progress", "verified", v.verified.Count(), "total", v.n)
	return nil
}

// LoadProgress reads progress written by [*Verifier.SaveProgress]
// and marks those chunks as verified,
// in addition to any chunks this Verifier has already confirmed.
//
// If the progress is for a different root or length,
// LoadProgress returns a [ProgressMismatchError] and changes nothing.
func (v *Verifier) LoadProgress(r io.Reader) error {
	var hdr [progressHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("failed to read progress header: %w", err)
	}

	var gotRoot william3.Digest
	copy(gotRoot[:], hdr[:william3.Size])
	gotLength := binary.BigEndian.Uint64(hdr[william3.Size:])

	if !gotRoot.Equal(v.root) || gotLength != v.length {
		return ProgressMismatchError{
			WantRoot: v.root, GotRoot: gotRoot,
			WantLength: v.length, GotLength: gotLength,
		}
	}

	loaded := bitset.MustNew(uint(v.n))

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.dec.ReadBitset(r, loaded); err != nil {
		return fmt.Errorf("failed to read verified chunks: %w", err)
	}

	// The final word may have room past the last chunk,
	// and those bits must stay clear.
	words := loaded.Words()
	if rem := v.n % 64; rem != 0 && words[len(words)-1]>>rem != 0 {
		return fmt.Errorf("saved progress marks chunks beyond the final chunk %d", v.n-1)
	}

	v.verified.InPlaceUnion(loaded)

	v.log.Info(
		"Loaded progress",
		"loaded", loaded.Count(),
		"verified", v.verified.Count(),
		"total", v.n,
	)
	return nil
}

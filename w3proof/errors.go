package w3proof

import (
	"fmt"

	"github.com/gordian-engine/william3"
)

// ChunkIndexError is returned from [*Verifier.VerifyChunk]
// when the chunk index is outside the message.
type ChunkIndexError struct {
	Index, NumChunks uint64
}

func (e ChunkIndexError) Error() string {
	return fmt.Sprintf("chunk index %d out of range for %d chunks", e.Index, e.NumChunks)
}

// ProofIndexError is returned from [*Verifier.VerifyChunk]
// when the proof was built for a different chunk.
type ProofIndexError struct {
	Want, Got uint64
}

func (e ProofIndexError) Error() string {
	return fmt.Sprintf("proof is for chunk %d, not chunk %d", e.Got, e.Want)
}

// ChunkLengthError is returned from [*Verifier.VerifyChunk]
// when the chunk data does not have the length
// implied by its index and the message length.
type ChunkLengthError struct {
	Index     uint64
	Want, Got uint64
}

func (e ChunkLengthError) Error() string {
	return fmt.Sprintf("chunk %d must be %d bytes (got %d)", e.Index, e.Want, e.Got)
}

// ProofLengthError is returned from [*Verifier.VerifyChunk]
// when the proof has the wrong number of siblings.
type ProofLengthError struct {
	Want, Got int
}

func (e ProofLengthError) Error() string {
	return fmt.Sprintf("proof must have %d siblings (got %d)", e.Want, e.Got)
}

// RootMismatchError is returned from [*Verifier.VerifyChunk]
// when the chunk and proof do not reproduce the expected root.
type RootMismatchError struct {
	Index uint64

	Want, Got william3.Digest
}

func (e RootMismatchError) Error() string {
	return fmt.Sprintf(
		"chunk %d proof produced root %s, expected %s",
		e.Index, e.Got, e.Want,
	)
}

// ProgressMismatchError is returned from [*Verifier.LoadProgress]
// when the saved progress belongs to a different message.
type ProgressMismatchError struct {
	WantRoot, GotRoot     william3.Digest
	WantLength, GotLength uint64
}

func (e ProgressMismatchError) Error() string {
	return fmt.Sprintf(
		"saved progress is for root %s with length %d, expected root %s with length %d",
		e.GotRoot, e.GotLength, e.WantRoot, e.WantLength,
	)
}

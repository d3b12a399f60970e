package william3

import "github.com/gordian-engine/william3/internal/w3compress"

// ChunkSize is the size in bytes of every chunk but the last.
const ChunkSize = 1024

// ChunkContext is the domain separation configuration for [HashChunk].
//
// The zero value is not usable; start from [DefaultChunkContext].
// A ChunkContext carries no per-call state,
// so one value may be shared by any number of goroutines.
type ChunkContext struct {
	cv    [8]uint32
	flags uint32
}

// DefaultChunkContext returns the chunk context used by [BatchHash].
func DefaultChunkContext() ChunkContext {
	return ChunkContext{
		cv:    w3compress.IV,
		flags: w3compress.ChunkStart | w3compress.ChunkEnd,
	}
}

// IsZero reports whether c is the unusable zero value.
func (c ChunkContext) IsZero() bool {
	return c == ChunkContext{}
}

// InnerContext is the domain separation configuration for [HashInner].
//
// The zero value is not usable; start from [DefaultInnerContext].
// Like [ChunkContext], it is immutable and safe to share.
type InnerContext struct {
	cv    [8]uint32
	flags uint32
}

// DefaultInnerContext returns the inner context used by [BatchHash].
func DefaultInnerContext() InnerContext {
	return InnerContext{
		cv:    w3compress.IV,
		flags: w3compress.Parent,
	}
}

// IsZero reports whether c is the unusable zero value.
func (c InnerContext) IsZero() bool {
	return c == InnerContext{}
}

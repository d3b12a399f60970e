// Package william3 implements the WILLIAM3 tree hash.
//
// WILLIAM3 splits its input into chunks of [ChunkSize] bytes,
// hashes every chunk under a chunk context ([HashChunk]),
// and combines the chunk labels pairwise under an inner context ([HashInner])
// until a single 32-byte [Digest] remains.
// Every inner combine binds a message length,
// and exactly one operation per message is marked as the root.
//
// Most callers only need [BatchHash].
// Use a [Reducer] to select a different tree [Shape]
// or to hash chunks on multiple goroutines.
//
// The compression function is the BLAKE3 compression function,
// initialized with the BLAKE3 digest of the string "WILLIAM3".
package william3

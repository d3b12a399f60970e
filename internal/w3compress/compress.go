// Package w3compress contains the compression function underlying WILLIAM3.
//
// The compression function is the BLAKE3 compression function,
// with a different initialization vector
// and a simpler block driver (see [Hash1]).
package w3compress

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockLen is the size in bytes of a single compressed block.
	BlockLen = 64

	// OutLen is the size in bytes of a chaining value.
	OutLen = 32
)

// Domain separation flags, set in the final word of the compression state.
// Bit 1<<4 is the BLAKE3 keyed hash flag; keyed hashing is unsupported
// and no flag here uses that bit.
const (
	ChunkStart uint32 = 1 << 0
	ChunkEnd   uint32 = 1 << 1
	Parent     uint32 = 1 << 2
	Root       uint32 = 1 << 3
)

// IV is the BLAKE3 digest of the ASCII string "WILLIAM3",
// interpreted as eight little endian words.
//
// It is both the initial chaining value for unkeyed hashing
// and the constant loaded into the third row of every compression state.
var IV = [8]uint32{
	0xc88f633b, 0x4168fbf2, 0x6ba32583, 0xb0ff1847,
	0xac57e47d, 0xa8931330, 0x796a4645, 0x6b28a3ee,
}

// schedule is the message word order for each of the seven rounds.
// Row r is the BLAKE3 permutation applied r times to the identity.
var schedule = [7][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8},
	{3, 4, 10, 12, 13, 2, 7, 14, 6, 5, 9, 0, 11, 15, 8, 1},
	{10, 7, 12, 9, 14, 3, 13, 15, 4, 0, 11, 2, 5, 8, 1, 6},
	{12, 13, 9, 11, 15, 10, 14, 8, 7, 2, 5, 3, 0, 1, 6, 4},
	{9, 14, 11, 5, 8, 12, 15, 1, 13, 3, 0, 10, 2, 6, 4, 7},
	{11, 15, 5, 0, 1, 9, 8, 6, 14, 10, 2, 12, 3, 4, 7, 13},
}

// Hash1 compresses data block by block into the chaining value cv,
// and returns the resulting chaining value.
//
// Every block is compressed with a zero counter, a block length of [BlockLen],
// and the same flags.
// A trailing partial block is zero padded.
// If data is empty, no compression happens and cv is returned unchanged.
func Hash1(cv [8]uint32, data []byte, flags uint32) [8]uint32 {
	var m [16]uint32
	for len(data) > 0 {
		var block [BlockLen]byte
		n := copy(block[:], data)
		data = data[n:]

		for i := range m {
			m[i] = binary.LittleEndian.Uint32(block[4*i:])
		}

		s := compress(&cv, &m, &IV, 0, BlockLen, flags)
		for i := range cv {
			cv[i] = s[i] ^ s[i+8]
		}
	}

	return cv
}

// PutWords writes the chaining value cv into dst as little endian bytes.
// dst must be at least [OutLen] bytes.
func PutWords(dst []byte, cv [8]uint32) {
	_ = dst[OutLen-1]
	for i, w := range cv {
		binary.LittleEndian.PutUint32(dst[4*i:], w)
	}
}

// compress runs the seven compression rounds and returns the full state.
// The iv argument supplies the words for the third state row.
func compress(
	cv *[8]uint32,
	m *[16]uint32,
	iv *[8]uint32,
	counter uint64,
	blockLen, flags uint32,
) [16]uint32 {
	s := [16]uint32{
		cv[0], cv[1], cv[2], cv[3],
		cv[4], cv[5], cv[6], cv[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(counter), uint32(counter >> 32), blockLen, flags,
	}

	for r := range schedule {
		round(&s, m, &schedule[r])
	}

	return s
}

func round(s *[16]uint32, m *[16]uint32, o *[16]uint8) {
	// Columns.
	g(s, 0, 4, 8, 12, m[o[0]], m[o[1]])
	g(s, 1, 5, 9, 13, m[o[2]], m[o[3]])
	g(s, 2, 6, 10, 14, m[o[4]], m[o[5]])
	g(s, 3, 7, 11, 15, m[o[6]], m[o[7]])

	// Diagonals.
	g(s, 0, 5, 10, 15, m[o[8]], m[o[9]])
	g(s, 1, 6, 11, 12, m[o[10]], m[o[11]])
	g(s, 2, 7, 8, 13, m[o[12]], m[o[13]])
	g(s, 3, 4, 9, 14, m[o[14]], m[o[15]])
}

func g(s *[16]uint32, a, b, c, d int, mx, my uint32) {
	s[a] += s[b] + mx
	s[d] = bits.RotateLeft32(s[d]^s[a], -16)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], -12)
	s[a] += s[b] + my
	s[d] = bits.RotateLeft32(s[d]^s[a], -8)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], -7)
}

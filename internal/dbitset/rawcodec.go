// Package dbitset encodes and decodes [bitset.BitSet] values
// whose length the reader already knows.
//
// Encoders and decoders keep their buffers between calls,
// so the zero value of each is ready to use
// and none of them are safe for concurrent use.
package dbitset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

type RawEncoder struct {
	buf []byte
}

func (e *RawEncoder) encode(
	bs *bitset.BitSet,
	adaptive bool,
) {
	words := bs.Words()
	nBytes := 8 * len(words)
	if adaptive {
		nBytes++
	}

	if cap(e.buf) < nBytes {
		e.buf = make([]byte, nBytes)
	} else {
		e.buf = e.buf[:nBytes]
	}

	buf := e.buf
	if adaptive {
		buf[0] = rawEncoding
		buf = buf[1:]
	}

	putWords(buf, words)
}

// WriteBitset writes the words of bs to w, with no header.
func (e *RawEncoder) WriteBitset(w io.Writer, bs *bitset.BitSet) error {
	e.encode(bs, false)

	return e.write(w)
}

func (e *RawEncoder) write(w io.Writer) error {
	if _, err := w.Write(e.buf); err != nil {
		return fmt.Errorf("failed to write raw bitset: %w", err)
	}

	return nil
}

type RawDecoder struct {
	buf []byte
}

// ReadBitset reads a bitset written by [*RawEncoder.WriteBitset] into bs.
// The length of bs must already match the encoded bitset.
func (d *RawDecoder) ReadBitset(r io.Reader, bs *bitset.BitSet) error {
	words := bs.Words()
	nBytes := len(words) * 8
	if cap(d.buf) < nBytes {
		d.buf = make([]byte, nBytes)
	} else {
		d.buf = d.buf[:nBytes]
	}

	if _, err := io.ReadFull(r, d.buf); err != nil {
		return fmt.Errorf("failed to read raw bitset data: %w", err)
	}

	getWords(words, d.buf)
	return nil
}

func putWords(dst []byte, words []uint64) {
	for i, w := range words {
		// We use big endian in most encodings for human readability,
		// but in this case we use little endian
		// since it is more likely to match a modern machine's endianness.
		binary.LittleEndian.PutUint64(dst[i*8:], w)
	}
}

func getWords(dst []uint64, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(src[i*8:])
	}
}

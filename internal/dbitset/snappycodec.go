package dbitset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/golang/snappy"
)

// snappyLenSize is the size of the big endian length
// preceding the snappy-encoded words.
const snappyLenSize = 4

type SnappyEncoder struct {
	// The byte slice representative of the bitset's Words.
	// If encoded through the AdaptiveEncoder,
	// it also has a 1-byte prefix of the [rawEncoding] header.
	wordBuf []byte

	// The snappy-encoded version of wordBuf,
	// prefixed with a big endian uint32 length.
	// If encoded through the AdaptiveEncoder,
	// it is additionally prefixed with the [snappyEncoding] header.
	encBuf []byte
}

func (e *SnappyEncoder) encode(
	bs *bitset.BitSet,
	adaptive bool,
) {
	words := bs.Words()
	nBytes := 8 * len(words)
	if adaptive {
		nBytes++
	}

	if cap(e.wordBuf) < nBytes {
		e.wordBuf = make([]byte, nBytes)
	} else {
		e.wordBuf = e.wordBuf[:nBytes]
	}

	maxEnc := snappy.MaxEncodedLen(nBytes) + snappyLenSize
	if adaptive {
		maxEnc++
	}

	if cap(e.encBuf) < maxEnc {
		e.encBuf = make([]byte, maxEnc)
	} else {
		e.encBuf = e.encBuf[:maxEnc]
	}
	encBuf := e.encBuf
	if adaptive {
		encBuf[0] = snappyEncoding
		encBuf = encBuf[1:]
	}

	// Copy the words first.
	wordBuf := e.wordBuf
	if adaptive {
		wordBuf[0] = rawEncoding
		wordBuf = wordBuf[1:]
	}
	putWords(wordBuf, words)

	// Figure out how large the snappy encoding is,
	// then backfill the size header.
	res := snappy.Encode(encBuf[snappyLenSize:], wordBuf)
	binary.BigEndian.PutUint32(encBuf, uint32(len(res)))

	hdr := snappyLenSize
	if adaptive {
		hdr++
	}
	e.encBuf = e.encBuf[:hdr+len(res)]
}

// WriteBitset writes the snappy-compressed words of bs to w.
func (e *SnappyEncoder) WriteBitset(w io.Writer, bs *bitset.BitSet) error {
	e.encode(bs, false)

	return e.write(w)
}

func (e *SnappyEncoder) write(w io.Writer) error {
	if _, err := w.Write(e.encBuf); err != nil {
		return fmt.Errorf("failed to write snappy bitset: %w", err)
	}

	return nil
}

type SnappyDecoder struct {
	// Holds the snappy-encoded bytes.
	encBuf []byte

	// The snappy-decoded bytes,
	// to be interpreted as uint64s to back the bitset's Words.
	wordBuf []byte
}

// ReadBitset reads a bitset written by [*SnappyEncoder.WriteBitset] into bs.
// The length of bs must already match the encoded bitset.
func (d *SnappyDecoder) ReadBitset(r io.Reader, bs *bitset.BitSet) error {
	if cap(d.encBuf) < snappyLenSize {
		// Probably uninitialized.
		// Allocate a bit larger here,
		// since we have to parse the length
		// before we can right-size encBuf.
		d.encBuf = make([]byte, snappyLenSize, 128)
	} else {
		d.encBuf = d.encBuf[:snappyLenSize]
	}

	if _, err := io.ReadFull(r, d.encBuf); err != nil {
		return fmt.Errorf("failed to read snappy length for bitset: %w", err)
	}

	words := bs.Words()
	encSz := binary.BigEndian.Uint32(d.encBuf)
	if maxSz := snappy.MaxEncodedLen(8 * len(words)); uint64(encSz) > uint64(maxSz) {
		return fmt.Errorf(
			"snappy bitset length %d exceeds maximum %d for %d words",
			encSz, maxSz, len(words),
		)
	}

	if cap(d.encBuf) < int(encSz) {
		d.encBuf = make([]byte, encSz)
	} else {
		d.encBuf = d.encBuf[:encSz]
	}

	if _, err := io.ReadFull(r, d.encBuf); err != nil {
		return fmt.Errorf("failed to read snappy-encoded bitset: %w", err)
	}

	decSz, err := snappy.DecodedLen(d.encBuf)
	if err != nil {
		return fmt.Errorf("failed to calculate snappy-decoded bitset length: %w", err)
	}

	if len(words)*8 != decSz {
		return fmt.Errorf(
			"calculated decoded size of %d bytes but expected %d",
			decSz, len(words)*8,
		)
	}

	// Don't need to size d.wordBuf; that will happen in snappy.Decode.

	wb, err := snappy.Decode(d.wordBuf, d.encBuf)
	if err != nil {
		return fmt.Errorf(
			"failed to decode snappy bitset: %w", err,
		)
	}

	// wb could have been nil on error;
	// that's why we used the temporary variable.
	d.wordBuf = wb

	getWords(words, d.wordBuf)
	return nil
}

// Package w3vector reads, writes, and checks WILLIAM3 test vector files.
//
// A vector file is a JSON array of [Vector] records,
// the format used to compare independent implementations.
package w3vector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/gordian-engine/william3"
)

// Vector is one record in a test vector file.
type Vector struct {
	Description string `json:"description"`

	// Human readable rendering of the input; see [InputText].
	InputText string `json:"input_text"`

	InputBytes ByteList `json:"input_bytes"`

	ExpectedHash william3.Digest `json:"expected_hash"`
}

// maxInputText is the number of input bytes kept in [Vector.InputText].
const maxInputText = 100

// InputText returns the input_text rendering of in:
// the input itself, or its first 100 bytes
// followed by "... (<n> bytes total)" when it is longer.
// A valid UTF-8 sequence straddling byte 100 is dropped whole,
// so the kept prefix may be up to three bytes shorter.
func InputText(in []byte) string {
	if len(in) <= maxInputText {
		return string(in)
	}
	return fmt.Sprintf("%s... (%d bytes total)", in[:textCut(in)], len(in))
}

// textCut returns maxInputText, or the start of the encoded rune
// that would otherwise be split at maxInputText.
func textCut(in []byte) int {
	for i := maxInputText - 1; i >= 0 && i > maxInputText-utf8.UTFMax; i-- {
		if !utf8.RuneStart(in[i]) {
			continue
		}
		r, size := utf8.DecodeRune(in[i:])
		if r != utf8.RuneError && i+size > maxInputText {
			return i
		}
		break
	}
	return maxInputText
}

// ByteList is a byte slice that encodes as a JSON array of numbers
// rather than base64.
type ByteList []byte

func (b ByteList) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+4*len(b))
	out = append(out, '[')
	for i, c := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(c), 10)
	}
	return append(out, ']'), nil
}

func (b *ByteList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("input_bytes must be an array of numbers: %w", err)
	}

	out := make(ByteList, len(nums))
	for i, n := range nums {
		if n < 0 || n > 0xff {
			return fmt.Errorf("input_bytes[%d] = %d is not a byte", i, n)
		}
		out[i] = byte(n)
	}
	*b = out
	return nil
}

// HashFunc computes the digest of a whole message,
// such as [william3.BatchHash] or [*william3.Reducer.Reduce].
type HashFunc func([]byte) william3.Digest

// Generate hashes every case with hash.
func Generate(cases []Case, hash HashFunc) []Vector {
	out := make([]Vector, len(cases))
	for i, c := range cases {
		out[i] = Vector{
			Description:  c.Description,
			InputText:    InputText(c.Input),
			InputBytes:   ByteList(c.Input),
			ExpectedHash: hash(c.Input),
		}
	}
	return out
}

// Write writes vs to w as indented JSON.
func Write(w io.Writer, vs []Vector) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(vs); err != nil {
		return fmt.Errorf("failed to write vectors: %w", err)
	}
	return nil
}

// Read reads a vector file from r.
func Read(r io.Reader) ([]Vector, error) {
	var vs []Vector
	if err := json.NewDecoder(r).Decode(&vs); err != nil {
		return nil, fmt.Errorf("failed to read vectors: %w", err)
	}
	return vs, nil
}

// Mismatch describes a vector whose expected hash
// does not match the computed one.
type Mismatch struct {
	Index       int
	Description string

	Want, Got william3.Digest
}

func (m Mismatch) String() string {
	return fmt.Sprintf(
		"vector %d (%s): expected %s, got %s",
		m.Index, m.Description, m.Want, m.Got,
	)
}

// Check recomputes every vector's hash from its input bytes
// and returns the vectors that disagree, in file order.
func Check(vs []Vector, hash HashFunc) []Mismatch {
	var out []Mismatch
	for i, v := range vs {
		got := hash(v.InputBytes)
		if !got.Equal(v.ExpectedHash) {
			out = append(out, Mismatch{
				Index:       i,
				Description: v.Description,
				Want:        v.ExpectedHash,
				Got:         got,
			})
		}
	}
	return out
}

package w3vector

import "bytes"

// Case is a named input to hash.
type Case struct {
	Description string
	Input       []byte
}

// DefaultCases returns the cases of the cross-implementation vector file,
// in file order.
func DefaultCases() []Case {
	ascii := make([]byte, 0, 95)
	for c := byte(' '); c <= '~'; c++ {
		ascii = append(ascii, c)
	}

	return []Case{
		{"empty string", []byte{}},
		{"single character", []byte("a")},
		{"hello", []byte("hello")},
		{"hello world", []byte("hello world")},
		{"BLAKE3", []byte("BLAKE3")},
		{"WILLIAM3", []byte("WILLIAM3")},
		{"256 bytes of 'a'", bytes.Repeat([]byte("a"), 256)},
		{"1024 bytes of 'b'", bytes.Repeat([]byte("b"), 1024)},
		{"1025 bytes (crosses chunk boundary)", bytes.Repeat([]byte("x"), 1025)},
		{"2048 bytes", bytes.Repeat([]byte("c"), 2048)},
		{"all ASCII printable chars", ascii},
	}
}

package william3

import "fmt"

// DigestLengthError is returned from [ParseDigest]
// when the input is not exactly 64 hex characters.
type DigestLengthError struct {
	Got int
}

func (e DigestLengthError) Error() string {
	return fmt.Sprintf("hex digest must be %d characters (got %d)", 2*Size, e.Got)
}

// InvalidDigestError is returned from [ParseDigest]
// when the input has the right length but is not valid hex.
type InvalidDigestError struct {
	Err error
}

func (e InvalidDigestError) Error() string {
	return "invalid hex digest: " + e.Err.Error()
}

func (e InvalidDigestError) Unwrap() error {
	return e.Err
}

// UnknownShapeError is returned from [ParseShape]
// when the name does not match any [Shape].
type UnknownShapeError struct {
	Name string
}

func (e UnknownShapeError) Error() string {
	return fmt.Sprintf("unknown tree shape %q", e.Name)
}

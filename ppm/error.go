package ppm

import "fmt"

// Kind classifies an Error.
type Kind int

// The kinds of Error returned by this package.
const (
	// InvalidSignature means the first header line is not "P6".
	InvalidSignature Kind = iota + 1
	// InvalidFormat means a header field does not parse or the header
	// never resolves. It is also returned by Grid.SetPixels for a buffer
	// of the wrong length.
	InvalidFormat
	// UnexpectedEOF means the data ends before a required header field or
	// delimiter.
	UnexpectedEOF
	// OutOfBounds means a pixel write falls outside the grid.
	OutOfBounds
	// IOError means reading or writing the underlying file or stream
	// failed.
	IOError
)

func (k Kind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case InvalidFormat:
		return "invalid file format"
	case UnexpectedEOF:
		return "unexpected end of file"
	case OutOfBounds:
		return "out of bounds"
	case IOError:
		return "i/o error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by the decoder, the encoder and the Grid mutators.
type Error struct {
	Kind   Kind
	Detail string // optional context
	Err    error  // optional underlying cause
}

// Sentinels for use with errors.Is, each matches any Error of the same Kind.
var (
	ErrInvalidSignature = &Error{Kind: InvalidSignature}
	ErrInvalidFormat    = &Error{Kind: InvalidFormat}
	ErrUnexpectedEOF    = &Error{Kind: UnexpectedEOF}
	ErrOutOfBounds      = &Error{Kind: OutOfBounds}
	ErrIO               = &Error{Kind: IOError}
)

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	s := "ppm: " + e.Kind.String()
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && t.Kind == e.Kind
}

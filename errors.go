package xnb

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMagic   = errors.New("xnb: invalid magic")
	ErrTruncated      = errors.New("xnb: unexpected end of data")
	ErrCorruptFrame   = errors.New("xnb: corrupt compression frame")
	ErrLimitExceeded  = errors.New("xnb: limit exceeded")
	ErrVarintOverflow = errors.New("xnb: 7-bit encoded integer overflows int32")
	ErrInvalidString  = errors.New("xnb: string is not valid UTF-8")
	ErrInvalidLength  = errors.New("xnb: invalid length prefix")
	ErrSizeMismatch   = errors.New("xnb: declared size does not match input length")

	ErrDuplicateReader = errors.New("xnb: duplicate type reader identity")

	ErrSharedResourceUnavailable = errors.New("xnb: shared resource out of range or not decoded")
	ErrSharedResourceWrongType   = errors.New("xnb: shared resource has a different type")
)

// DecodeError is the single structural error returned by a failed decode.
// Offset is relative to the input for the header and decompression phases and
// relative to the (decompressed) body for every later phase.
type DecodeError struct {
	Phase  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Phase == "" {
		return fmt.Sprintf("at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v", e.Phase, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TypeIDOutOfRangeError reports a content-stream type id that has no entry in
// the document's type reader table. It almost always means the reader is
// misaligned with the data.
type TypeIDOutOfRangeError struct {
	ID       int
	TableLen int
}

func (e *TypeIDOutOfRangeError) Error() string {
	return fmt.Sprintf("xnb: type reader id %d out of range, only %d readers declared", e.ID, e.TableLen)
}

// NoTypeReaderError reports a dereferenced table entry that the registry
// could not resolve.
type NoTypeReaderError struct {
	Identity TypeIdentity
}

func (e *NoTypeReaderError) Error() string {
	return fmt.Sprintf("xnb: no type reader implementation for %q version %d", e.Identity.Name, e.Identity.Version)
}

// WrongTypeError reports a statically-checked read whose table entry names a
// different identity than the one expected.
type WrongTypeError struct {
	Expected TypeIdentity
	Found    TypeIdentity
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("xnb: wrong type for polymorphic object: found %s, expected %s", e.Found, e.Expected)
}

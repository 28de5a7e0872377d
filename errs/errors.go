// Package errs defines the sentinel errors returned by the bytestream,
// structs, and prop packages. Every decode failure wraps one of these with
// the byte offset and a short descriptor via OffsetError, so callers can use
// errors.Is against the sentinel while still getting a precise location.
// Encode-time failures (tree validation, fixed-layout value mismatches) carry
// no byte offset and are returned as the bare sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Decode-side sentinels. These classify the taxonomy in the codec's error
// handling design: truncation, malformed strings, unknown primitive types,
// and size-field mismatches are all fatal and non-recoverable.
var (
	// ErrUnexpectedEnd is returned when a read would advance the cursor past the end of the buffer.
	ErrUnexpectedEnd = errors.New("bytestream: unexpected end of buffer")
	// ErrMalformedString is returned when a string's length prefix is inconsistent with the remaining buffer.
	ErrMalformedString = errors.New("bytestream: malformed string")
	// ErrStringNotTerminated is returned when a decoded string is missing its trailing NUL terminator.
	ErrStringNotTerminated = errors.New("bytestream: string missing NUL terminator")
	// ErrUnknownPrimitiveType is returned when a property's type tag is outside the recognized primitive set.
	ErrUnknownPrimitiveType = errors.New("prop: unknown primitive type tag")
	// ErrNegativeSize is returned when a property's declared size is negative.
	ErrNegativeSize = errors.New("prop: negative declared size")
	// ErrSizeMismatch is returned when a property's declared size disagrees with the bytes its value region occupies,
	// including a nested property list that consumes more bytes than its enclosing size field allows.
	ErrSizeMismatch = errors.New("prop: nested list exceeded enclosing size field")
	// ErrNonZeroArrayIndex is returned when a property's array-index field is non-zero.
	ErrNonZeroArrayIndex = errors.New("prop: non-zero array index field")
	// ErrUnknownFixedStruct is returned when a fixed-layout struct codec is asked to encode a value whose Go type is not its kind (including a nil value).
	ErrUnknownFixedStruct = errors.New("structs: unknown fixed-layout struct tag")

	// ErrMissingInnerType is returned when an array property has no inner type tag set.
	ErrMissingInnerType = errors.New("prop: array missing inner type tag")
	// ErrMissingStructTag is returned when a struct (or struct-array) property has no struct tag set.
	ErrMissingStructTag = errors.New("prop: struct missing struct tag")
	// ErrEmptyName is returned when a property with an empty name is encoded.
	ErrEmptyName = errors.New("prop: empty property name")
	// ErrPathNotFound is returned by Set when the dotted path does not resolve to an existing property.
	ErrPathNotFound = errors.New("prop: path not found")
)

// OffsetError wraps a sentinel error with the byte offset at which it was
// detected and a short human-readable descriptor, matching the codec's
// "errors bubble out with the offending byte offset" propagation rule.
type OffsetError struct {
	Offset int
	Desc   string
	Err    error
}

func (e *OffsetError) Error() string {
	if e.Desc == "" {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("offset %d: %s: %v", e.Offset, e.Desc, e.Err)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}

// At wraps err with the byte offset it was detected at and an optional
// short descriptor. Returns nil if err is nil.
func At(offset int, err error, desc string) error {
	if err == nil {
		return nil
	}

	return &OffsetError{Offset: offset, Desc: desc, Err: err}
}

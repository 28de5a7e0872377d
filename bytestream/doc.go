// Package bytestream provides positioned read/write access over a contiguous
// byte buffer: a Reader with a monotonically advancing cursor, and a Writer
// with an append-only buffer plus a single reserve-and-patch primitive.
//
// All multi-byte primitives are little-endian, matching the on-disk format
// produced by the host game engine. The Reader fails with a wrapped
// errs.ErrUnexpectedEnd if a read would exceed the buffer (for a string whose
// length prefix runs past the end of the buffer, a wrapped
// errs.ErrMalformedString); the Writer never fails, growing its backing
// buffer as needed.
//
// # Strings
//
// ReadString and WriteString implement the property stream's length-prefixed,
// variable-width string encoding: a signed 32-bit length prefix whose sign
// selects the character width (positive => 8-bit, negative => 16-bit units),
// whose value zero means "absent" (distinct from an empty string, which is
// length one: just the NUL terminator).
//
// # Seek-and-patch
//
// Writer.ReserveUint32 reserves four bytes and returns their offset; once the
// value they describe has been written, PatchUint32 overwrites those four
// bytes with the final count. This is the only backward-seeking operation in
// the package, and it exists solely to support the property codec's
// write-size-after-the-fact framing (see the prop package).
package bytestream

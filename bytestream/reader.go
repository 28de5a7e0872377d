package bytestream

import (
	"math"
	"unicode/utf16"

	"github.com/icarus-tools/mountsave/endian"
	"github.com/icarus-tools/mountsave/errs"
)

// Reader is a positioned reader over a byte slice. It never copies the
// source buffer up front; ReadBytes and ReadString copy only the regions
// they return, so the caller is free to release the source buffer as soon
// as decoding completes.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data using the little-endian engine, the
// only byte order observed in the target corpus.
func NewReader(data []byte) *Reader {
	return NewReaderEngine(data, endian.GetLittleEndianEngine())
}

// NewReaderEngine creates a Reader over data using the given endian engine.
func NewReaderEngine(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// require checks that n more bytes are available, returning a wrapped
// ErrUnexpectedEnd at the current offset if not.
func (r *Reader) require(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errs.At(r.pos, errs.ErrUnexpectedEnd, "")
	}

	return nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadBytes reads and returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n

	return out, nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := int32(r.engine.Uint32(r.data[r.pos : r.pos+4])) //nolint:gosec
	r.pos += 4

	return v, nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := r.engine.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4

	return v, nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}

	v := int64(r.engine.Uint64(r.data[r.pos : r.pos+8])) //nolint:gosec
	r.pos += 8

	return v, nil
}

// ReadFloat32 reads a little-endian IEEE-754 32-bit float.
func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := math.Float32frombits(r.engine.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4

	return v, nil
}

// ReadFloat64 reads a little-endian IEEE-754 64-bit float.
func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}

	v := math.Float64frombits(r.engine.Uint64(r.data[r.pos : r.pos+8]))
	r.pos += 8

	return v, nil
}

// Skip advances the cursor by n bytes without interpreting them, used to
// discard padding bytes left over from a size-bounded nested list (see the
// prop package's list decoder).
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}

	r.pos += n

	return nil
}

// ReadString reads the length-prefixed, variable-width string described in
// the property stream format:
//
//   - a signed 32-bit length prefix
//   - zero means the string is absent: present is false, value is "", and no
//     further bytes are consumed
//   - positive N means an 8-bit string of N bytes, the last of which is the
//     NUL terminator; the returned value excludes the terminator
//   - negative N means 16-bit little-endian units, -N of them, the last of
//     which is the NUL terminator unit; the returned value is the UTF-8
//     re-encoding of the UTF-16 units excluding the terminator
func (r *Reader) ReadString() (value string, present bool, err error) {
	lengthStart := r.pos

	length, err := r.ReadInt32()
	if err != nil {
		return "", false, err
	}

	switch {
	case length == 0:
		return "", false, nil
	case length > 0:
		if int(length) > r.Remaining() {
			return "", false, errs.At(lengthStart, errs.ErrMalformedString, "8-bit string length exceeds buffer")
		}

		raw, err := r.ReadBytes(int(length))
		if err != nil {
			return "", false, err
		}

		if raw[len(raw)-1] != 0 {
			return "", false, errs.At(lengthStart, errs.ErrStringNotTerminated, "8-bit string")
		}

		return string(raw[:len(raw)-1]), true, nil
	default:
		units := -int(length)
		if units*2 > r.Remaining() {
			return "", false, errs.At(lengthStart, errs.ErrMalformedString, "16-bit string length exceeds buffer")
		}

		raw, err := r.ReadBytes(units * 2)
		if err != nil {
			return "", false, err
		}

		u16 := make([]uint16, units)
		for i := range u16 {
			u16[i] = r.engine.Uint16(raw[i*2 : i*2+2])
		}

		if u16[units-1] != 0 {
			return "", false, errs.At(lengthStart, errs.ErrStringNotTerminated, "16-bit string")
		}

		return string(utf16.Decode(u16[:units-1])), true, nil
	}
}

package bytestream

import (
	"math"
	"unicode/utf16"

	"github.com/icarus-tools/mountsave/endian"
	"github.com/icarus-tools/mountsave/internal/pool"
)

// Writer is an append-only byte buffer with a single random-access
// primitive: reserving and later patching a 32-bit size field. No other
// backward seek is exposed; every other write appends to the end of the
// buffer.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	pooled bool
}

// NewWriter creates a Writer using the little-endian engine.
func NewWriter() *Writer {
	return NewWriterEngine(endian.GetLittleEndianEngine())
}

// NewWriterEngine creates a Writer using the given endian engine.
func NewWriterEngine(engine endian.EndianEngine) *Writer {
	return &Writer{buf: pool.Get(), engine: engine, pooled: true}
}

// Release returns the writer's internal buffer to the pool. Bytes must not
// be called after Release. Safe to call on a Writer whose buffer has
// already been released or that was never pool-backed.
func (w *Writer) Release() {
	if w.pooled && w.buf != nil {
		pool.Put(w.buf)
	}

	w.buf = nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output. The returned slice aliases the
// writer's internal buffer and is only valid until the next write or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(b byte) {
	w.buf.Grow(1)
	w.buf.MustWrite([]byte{b})
}

// WriteBytes appends data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Grow(len(data))
	w.buf.MustWrite(data)
}

// WriteInt32 appends a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v)) //nolint:gosec
}

// WriteUint32 appends a little-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.Grow(4)
	start := w.buf.Len()
	w.buf.ExtendOrGrow(4)
	w.engine.PutUint32(w.buf.Slice(start, start+4), v)
}

// WriteInt64 appends a little-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf.Grow(8)
	start := w.buf.Len()
	w.buf.ExtendOrGrow(8)
	w.engine.PutUint64(w.buf.Slice(start, start+8), uint64(v)) //nolint:gosec
}

// WriteFloat32 appends a little-endian IEEE-754 32-bit float.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.Grow(4)
	start := w.buf.Len()
	w.buf.ExtendOrGrow(4)
	w.engine.PutUint32(w.buf.Slice(start, start+4), math.Float32bits(v))
}

// WriteFloat64 appends a little-endian IEEE-754 64-bit float.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.Grow(8)
	start := w.buf.Len()
	w.buf.ExtendOrGrow(8)
	w.engine.PutUint64(w.buf.Slice(start, start+8), math.Float64bits(v))
}

// WriteString writes the length-prefixed, variable-width string encoding
// described in bytestream's package doc. present=false writes only the
// zero-length "absent" marker and no data bytes.
func (w *Writer) WriteString(s string, present bool) {
	if !present {
		w.WriteInt32(0)
		return
	}

	if isASCII(s) {
		w.WriteInt32(int32(len(s) + 1)) //nolint:gosec
		w.WriteBytes([]byte(s))
		w.WriteUint8(0)

		return
	}

	units := utf16.Encode([]rune(s))
	w.WriteInt32(-int32(len(units) + 1)) //nolint:gosec

	w.buf.Grow(len(units)*2 + 2)
	for _, u := range units {
		start := w.buf.Len()
		w.buf.ExtendOrGrow(2)
		w.engine.PutUint16(w.buf.Slice(start, start+2), u)
	}

	start := w.buf.Len()
	w.buf.ExtendOrGrow(2)
	w.engine.PutUint16(w.buf.Slice(start, start+2), 0)
}

// ReserveUint32 reserves four bytes for a size field to be patched later and
// returns their offset. The reserved bytes are zeroed until PatchUint32 is
// called.
func (w *Writer) ReserveUint32() int {
	offset := w.buf.Len()
	w.WriteUint32(0)

	return offset
}

// PatchUint32 overwrites the four bytes reserved at offset (via ReserveUint32)
// with v. It is the only backward-seeking operation this package permits.
func (w *Writer) PatchUint32(offset int, v uint32) {
	w.engine.PutUint32(w.buf.Slice(offset, offset+4), v)
}

// isASCII reports whether s contains only code points below 0x80, the
// boundary at which the property stream format switches a string's encoding
// from 8-bit to 16-bit.
func isASCII(s string) bool {
	for _, r := range s {
		if r >= 0x80 {
			return false
		}
	}

	return true
}

package prop

import (
	"github.com/icarus-tools/mountsave/bytestream"
	"github.com/icarus-tools/mountsave/errs"
	"github.com/icarus-tools/mountsave/structs"
)

// Encode serializes doc back into a property stream. The trailing pad
// recorded on doc (nil, or the literal bytes to emit) is written verbatim
// after the list's None terminator.
func Encode(doc *Document) ([]byte, error) {
	w := bytestream.NewWriterEngine(littleEndian())
	defer w.Release()

	if err := encodeList(w, doc.Properties); err != nil {
		return nil, err
	}

	if doc.TrailingPad != nil {
		w.WriteBytes(doc.TrailingPad)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

// encodeList writes each property in order, then a single None terminator.
func encodeList(w *bytestream.Writer, properties []*Property) error {
	for _, p := range properties {
		if err := encodeOne(w, p); err != nil {
			return err
		}
	}

	w.WriteString(sentinelName, true)

	return nil
}

func encodeOne(w *bytestream.Writer, p *Property) error {
	if err := p.Validate(); err != nil {
		return err
	}

	w.WriteString(p.Name, true)
	w.WriteString(p.Type.String(), true)

	sizeOffset := w.ReserveUint32()
	w.WriteInt32(p.ArrayIndex)

	// Per-type header bytes are written here, before the size region
	// starts; only the value bytes written after them count toward size.
	switch p.Type {
	case TagInt32, TagUInt32, TagInt64, TagFloat32, TagFloat64, TagString, TagName, TagByte:
		w.WriteUint8(0)
	case TagBool:
		w.WriteUint8(boolByte(p.BoolVal))
		w.WriteUint8(0)
	case TagEnum:
		w.WriteString(p.EnumTag, true)
		w.WriteUint8(0)
	case TagArray:
		w.WriteString(p.InnerType.String(), true)
		w.WriteUint8(0)
	case TagStruct:
		w.WriteString(p.StructTag, true)
		w.WriteBytes(p.StructGUID[:])
		w.WriteUint8(0)
	case TagMap:
		w.WriteString(p.MapKeyType, true)
		w.WriteString(p.MapValType, true)
		w.WriteUint8(0)
	}

	valueStart := w.Len()

	if err := encodeValue(w, p); err != nil {
		return err
	}

	size := w.Len() - valueStart
	w.PatchUint32(sizeOffset, uint32(size)) //nolint:gosec

	return nil
}

// encodeValue writes only the value region (the bytes the size field
// describes); the caller has already written the per-type header.
func encodeValue(w *bytestream.Writer, p *Property) error {
	switch p.Type {
	case TagInt32, TagUInt32, TagInt64, TagFloat32, TagFloat64, TagString, TagName, TagByte:
		return encodeScalar(w, p)
	case TagBool:
		return nil // the bool byte and its padding were written as header above
	case TagEnum:
		w.WriteString(p.StrVal, p.StrPresent)
		return nil
	case TagArray:
		return encodeArray(w, p)
	case TagStruct:
		return encodeStructValue(w, p)
	case TagMap:
		w.WriteBytes(p.MapRaw)
		return nil
	default:
		return errs.ErrUnknownPrimitiveType
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}

	return 0
}

func encodeScalar(w *bytestream.Writer, p *Property) error {
	switch p.Type {
	case TagInt32:
		w.WriteInt32(p.Int32Val)
	case TagUInt32:
		w.WriteUint32(p.UInt32Val)
	case TagInt64:
		w.WriteInt64(p.Int64Val)
	case TagFloat32:
		w.WriteFloat32(p.Float32Val)
	case TagFloat64:
		w.WriteFloat64(p.Float64Val)
	case TagByte:
		w.WriteUint8(p.ByteVal)
	case TagString, TagName:
		w.WriteString(p.StrVal, p.StrPresent)
	}

	return nil
}

func encodeStructValue(w *bytestream.Writer, p *Property) error {
	if codec, ok := structs.Lookup(p.StructTag); ok {
		return codec.Encode(w, p.Fixed)
	}

	return encodeList(w, p.Children)
}

func encodeArray(w *bytestream.Writer, p *Property) error {
	switch p.InnerType {
	case TagStruct:
		w.WriteInt32(int32(len(p.Children))) //nolint:gosec
		return encodeStructArray(w, p)
	case TagByte:
		w.WriteInt32(int32(len(p.ByteArr))) //nolint:gosec
		w.WriteBytes(p.ByteArr)

		return nil
	case TagInt32:
		w.WriteInt32(int32(len(p.Int32Arr))) //nolint:gosec
		for _, v := range p.Int32Arr {
			w.WriteInt32(v)
		}

		return nil
	case TagFloat32:
		w.WriteInt32(int32(len(p.Float32Arr))) //nolint:gosec
		for _, v := range p.Float32Arr {
			w.WriteFloat32(v)
		}

		return nil
	case TagString:
		w.WriteInt32(int32(len(p.StrArr))) //nolint:gosec
		for _, v := range p.StrArr {
			w.WriteString(v, true)
		}

		return nil
	default:
		return errs.ErrUnknownPrimitiveType
	}
}

// encodeStructArray writes the prototype header (whose declared size is the
// combined byte length of all element bodies) followed by the elements
// themselves. The prototype size is computed by first serializing every
// element into a scratch writer, per the design's preferred "compose, then
// concatenate" strategy (avoids a second backward seek on top of the one
// the size field itself already needs).
func encodeStructArray(w *bytestream.Writer, p *Property) error {
	scratch := bytestream.NewWriterEngine(littleEndian())
	defer scratch.Release()

	for _, elem := range p.Children {
		if err := encodeList(scratch, elem.Children); err != nil {
			return err
		}
	}

	w.WriteString(p.ElementName, true)
	w.WriteString(TagStruct.String(), true)
	w.WriteInt32(int32(scratch.Len())) //nolint:gosec
	w.WriteInt32(p.ElementArrayIndex)  // prototype's own array-index field, validated zero by Property.Validate
	w.WriteString(p.StructTag, true)
	w.WriteBytes(p.ElementStructGUID[:])
	w.WriteUint8(0)
	w.WriteBytes(scratch.Bytes())

	return nil
}

package prop

import (
	"github.com/icarus-tools/mountsave/bytestream"
	"github.com/icarus-tools/mountsave/errs"
	"github.com/icarus-tools/mountsave/structs"
)

// sentinelName is the phantom property name that terminates a property list.
const sentinelName = "None"

// Decode parses a full property stream: an ordered list of properties
// terminated by the None sentinel, optionally followed by a four-byte
// trailing pad.
func Decode(data []byte) (*Document, error) {
	r := bytestream.NewReaderEngine(data, littleEndian())

	properties, err := decodeList(r, -1)
	if err != nil {
		return nil, err
	}

	doc := &Document{Properties: properties}

	if r.Remaining() == 4 {
		pad, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}

		doc.TrailingPad = pad
	} else if r.Remaining() != 0 {
		return nil, errs.At(r.Pos(), errs.ErrUnexpectedEnd, "unconsumed trailing bytes")
	}

	return doc, nil
}

// decodeList decodes properties until the None sentinel is consumed or,
// when bound >= 0, until bound bytes have been consumed from the reader's
// position at entry — whichever comes first. If the sentinel is consumed
// before the byte bound, the cursor is advanced to the bound and the
// skipped bytes (reference-encoder padding) are discarded.
func decodeList(r *bytestream.Reader, bound int) ([]*Property, error) {
	start := r.Pos()

	var properties []*Property

	for {
		if bound >= 0 && r.Pos()-start >= bound {
			break
		}

		p, isEnd, err := decodeOne(r)
		if err != nil {
			return nil, err
		}

		if isEnd {
			break
		}

		properties = append(properties, p)
	}

	if bound >= 0 {
		consumed := r.Pos() - start
		if consumed > bound {
			return nil, errs.At(r.Pos(), errs.ErrSizeMismatch, "nested list exceeded enclosing size")
		}

		if consumed < bound {
			if err := r.Skip(bound - consumed); err != nil {
				return nil, err
			}
		}
	}

	return properties, nil
}

// decodeOne decodes a single property tag and its value. isEnd is true (and
// p is nil) when the sentinel None was read instead of a real property.
func decodeOne(r *bytestream.Reader) (p *Property, isEnd bool, err error) {
	name, present, err := r.ReadString()
	if err != nil {
		return nil, false, err
	}

	if !present || name == sentinelName {
		return nil, true, nil
	}

	typeStart := r.Pos()

	typeStr, present, err := r.ReadString()
	if err != nil {
		return nil, false, err
	}

	if !present {
		return nil, false, errs.At(typeStart, errs.ErrMalformedString, "missing property type string")
	}

	tag, ok := tagFromTypeString(typeStr)
	if !ok {
		return nil, false, errs.At(typeStart, errs.ErrUnknownPrimitiveType, typeStr)
	}

	sizeStart := r.Pos()

	size, err := r.ReadInt32()
	if err != nil {
		return nil, false, err
	}

	if size < 0 {
		return nil, false, errs.At(sizeStart, errs.ErrNegativeSize, "")
	}

	arrIdx, err := r.ReadInt32()
	if err != nil {
		return nil, false, err
	}

	p = &Property{Name: name, Type: tag, ArrayIndex: arrIdx}

	if err := decodeValue(r, p, int(size)); err != nil {
		return nil, false, err
	}

	return p, false, nil
}

// decodeValue reads the per-type header and value region for p, whose size
// field has already been read as size. The header bytes that precede the
// value live outside the size region for every type except Bool, whose
// size is always zero.
func decodeValue(r *bytestream.Reader, p *Property, size int) error {
	switch p.Type {
	case TagInt32, TagUInt32, TagInt64, TagFloat32, TagFloat64, TagString, TagName, TagByte:
		if _, err := r.ReadUint8(); err != nil { // padding byte, outside size region
			return err
		}

		valueStart := r.Pos()
		if err := decodeScalar(r, p); err != nil {
			return err
		}

		return checkSize(r, valueStart, size)
	case TagBool:
		if size != 0 {
			return errs.At(r.Pos(), errs.ErrSizeMismatch, "bool property size must be 0")
		}

		b, err := r.ReadUint8()
		if err != nil {
			return err
		}

		p.BoolVal = b != 0

		_, err = r.ReadUint8() // padding byte, also outside size region
		return err
	case TagEnum:
		enumTag, _, err := r.ReadString()
		if err != nil {
			return err
		}

		p.EnumTag = enumTag

		if _, err := r.ReadUint8(); err != nil {
			return err
		}

		valueStart := r.Pos()

		member, present, err := r.ReadString()
		if err != nil {
			return err
		}

		p.StrVal, p.StrPresent = member, present

		return checkSize(r, valueStart, size)
	case TagArray:
		innerStart := r.Pos()

		innerStr, _, err := r.ReadString()
		if err != nil {
			return err
		}

		inner, ok := tagFromTypeString(innerStr)
		if !ok {
			return errs.At(innerStart, errs.ErrUnknownPrimitiveType, innerStr)
		}

		p.InnerType = inner

		if _, err := r.ReadUint8(); err != nil {
			return err
		}

		valueStart := r.Pos()
		if err := decodeArray(r, p, size); err != nil {
			return err
		}

		return checkSize(r, valueStart, size)
	case TagStruct:
		structTag, _, err := r.ReadString()
		if err != nil {
			return err
		}

		p.StructTag = structTag

		guid, err := r.ReadBytes(16)
		if err != nil {
			return err
		}

		copy(p.StructGUID[:], guid)

		if _, err := r.ReadUint8(); err != nil {
			return err
		}

		valueStart := r.Pos()
		if err := decodeStructValue(r, p, size); err != nil {
			return err
		}

		return checkSize(r, valueStart, size)
	case TagMap:
		keyType, _, err := r.ReadString()
		if err != nil {
			return err
		}

		valType, _, err := r.ReadString()
		if err != nil {
			return err
		}

		p.MapKeyType, p.MapValType = keyType, valType

		if _, err := r.ReadUint8(); err != nil {
			return err
		}

		raw, err := r.ReadBytes(size)
		if err != nil {
			return err
		}

		p.MapRaw = raw

		return nil
	default:
		return errs.At(r.Pos(), errs.ErrUnknownPrimitiveType, p.Type.String())
	}
}

func checkSize(r *bytestream.Reader, valueStart, size int) error {
	if consumed := r.Pos() - valueStart; consumed != size {
		return errs.At(r.Pos(), errs.ErrSizeMismatch, "value region did not match declared size")
	}

	return nil
}

func decodeScalar(r *bytestream.Reader, p *Property) error {
	var err error

	switch p.Type {
	case TagInt32:
		p.Int32Val, err = r.ReadInt32()
	case TagUInt32:
		p.UInt32Val, err = r.ReadUint32()
	case TagInt64:
		p.Int64Val, err = r.ReadInt64()
	case TagFloat32:
		p.Float32Val, err = r.ReadFloat32()
	case TagFloat64:
		p.Float64Val, err = r.ReadFloat64()
	case TagByte:
		p.ByteVal, err = r.ReadUint8()
	case TagString, TagName:
		p.StrVal, p.StrPresent, err = r.ReadString()
	}

	return err
}

// decodeStructValue dispatches to the fixed-layout registry (4.B) or, for
// property-bearing struct tags, to the nested property-list codec (4.D)
// bounded by size.
func decodeStructValue(r *bytestream.Reader, p *Property, size int) error {
	if codec, ok := structs.Lookup(p.StructTag); ok {
		if codec.Size() != size {
			return errs.At(r.Pos(), errs.ErrSizeMismatch, "fixed struct size does not match declared size")
		}

		val, err := codec.Decode(r)
		if err != nil {
			return err
		}

		p.Fixed = val

		return nil
	}

	children, err := decodeList(r, size)
	if err != nil {
		return err
	}

	p.Children = children

	return nil
}

// decodeArray reads the array value region: a 4-byte element count followed
// by the elements, whose shape depends on InnerType (see 4.C, "Array
// element handling").
func decodeArray(r *bytestream.Reader, p *Property, _ int) error {
	countStart := r.Pos()

	count, err := r.ReadInt32()
	if err != nil {
		return err
	}

	if count < 0 {
		return errs.At(countStart, errs.ErrNegativeSize, "array element count")
	}

	switch p.InnerType {
	case TagStruct:
		return decodeStructArray(r, p, int(count))
	case TagByte:
		raw, err := r.ReadBytes(int(count))
		if err != nil {
			return err
		}

		p.ByteArr = raw

		return nil
	case TagInt32:
		arr := make([]int32, count)
		for i := range arr {
			if arr[i], err = r.ReadInt32(); err != nil {
				return err
			}
		}

		p.Int32Arr = arr

		return nil
	case TagFloat32:
		arr := make([]float32, count)
		for i := range arr {
			if arr[i], err = r.ReadFloat32(); err != nil {
				return err
			}
		}

		p.Float32Arr = arr

		return nil
	case TagString:
		arr := make([]string, count)
		for i := range arr {
			s, _, err := r.ReadString()
			if err != nil {
				return err
			}

			arr[i] = s
		}

		p.StrArr = arr

		return nil
	default:
		return errs.At(countStart, errs.ErrUnknownPrimitiveType, p.InnerType.String())
	}
}

// decodeStructArray decodes the prototype property header (whose declared
// size is the combined byte length of all element bodies) and then count
// element bodies, each a self-terminating property list.
func decodeStructArray(r *bytestream.Reader, p *Property, count int) error {
	protoName, _, err := r.ReadString()
	if err != nil {
		return err
	}

	protoTypeStart := r.Pos()

	protoTypeStr, _, err := r.ReadString()
	if err != nil {
		return err
	}

	if tag, ok := tagFromTypeString(protoTypeStr); !ok || tag != TagStruct {
		return errs.At(protoTypeStart, errs.ErrUnknownPrimitiveType, protoTypeStr)
	}

	protoSizeStart := r.Pos()

	protoSize, err := r.ReadInt32()
	if err != nil {
		return err
	}

	if protoSize < 0 {
		return errs.At(protoSizeStart, errs.ErrNegativeSize, "")
	}

	protoArrIdx, err := r.ReadInt32() // prototype's own array-index field
	if err != nil {
		return err
	}

	structTag, _, err := r.ReadString()
	if err != nil {
		return err
	}

	guid, err := r.ReadBytes(16)
	if err != nil {
		return err
	}

	if _, err := r.ReadUint8(); err != nil {
		return err
	}

	p.ElementName = protoName
	p.StructTag = structTag
	p.ElementArrayIndex = protoArrIdx
	copy(p.ElementStructGUID[:], guid)

	elemStart := r.Pos()

	children := make([]*Property, count)

	for i := range children {
		body, err := decodeList(r, -1)
		if err != nil {
			return err
		}

		children[i] = &Property{
			Name:       protoName,
			Type:       TagStruct,
			StructTag:  structTag,
			StructGUID: [16]byte(guid),
			Children:   body,
		}
	}

	if consumed := r.Pos() - elemStart; consumed != int(protoSize) {
		return errs.At(r.Pos(), errs.ErrSizeMismatch, "struct array prototype size did not match element bodies")
	}

	p.Children = children

	return nil
}

package prop

import "github.com/icarus-tools/mountsave/errs"

// Tag is the closed set of property type tags the codec recognizes.
type Tag uint8

const (
	// TagUnset is the zero value of Tag, used to detect a Property built
	// without an explicit Type or InnerType rather than mistaking it for
	// TagInt32.
	TagUnset Tag = iota
	TagInt32
	TagUInt32
	TagInt64
	TagFloat32
	TagFloat64
	TagBool
	TagString
	TagName
	TagEnum
	TagStruct
	TagArray
	TagMap
	TagByte
)

// String returns the tag's on-disk type string, e.g. TagInt32 -> "IntProperty".
func (t Tag) String() string {
	if s, ok := tagToTypeString[t]; ok {
		return s
	}

	return "UnknownProperty"
}

var tagToTypeString = map[Tag]string{
	TagInt32:   "IntProperty",
	TagUInt32:  "UInt32Property",
	TagInt64:   "Int64Property",
	TagFloat32: "FloatProperty",
	TagFloat64: "DoubleProperty",
	TagBool:    "BoolProperty",
	TagString:  "StrProperty",
	TagName:    "NameProperty",
	TagEnum:    "EnumProperty",
	TagStruct:  "StructProperty",
	TagArray:   "ArrayProperty",
	TagMap:     "MapProperty",
	TagByte:    "ByteProperty",
}

var typeStringToTag = func() map[string]Tag {
	m := make(map[string]Tag, len(tagToTypeString))
	for tag, s := range tagToTypeString {
		m[s] = tag
	}

	return m
}()

func tagFromTypeString(s string) (Tag, bool) {
	t, ok := typeStringToTag[s]
	return t, ok
}

// Property is the uniform decoded node described by the codec's data model.
// Only the fields relevant to Type are meaningful; the rest are left zero.
//
// Container recursion uses Children for both struct bodies and struct-array
// elements: a TagStruct property's Children are its body properties; a
// TagArray property whose InnerType is TagStruct has one Children entry per
// element, each itself a synthetic TagStruct Property carrying the array's
// ElementName and StructTag and its own Children (the element's body).
type Property struct {
	Name       string
	Type       Tag
	ArrayIndex int32 // preserved verbatim from the header; must be 0 to encode

	BoolVal    bool
	Int32Val   int32
	UInt32Val  uint32
	Int64Val   int64
	Float32Val float32
	Float64Val float64
	ByteVal    byte

	// StrVal holds the scalar value for Str, Name, and Enum (the enum
	// member name) properties. StrPresent distinguishes an absent string
	// (zero length prefix) from an empty one (length-one prefix, just the
	// NUL) — both decode to StrVal == "", only StrPresent differs.
	StrVal     string
	StrPresent bool

	EnumTag string // Enum kind name (e.g. "EMountType")

	StructTag  string   // Struct kind name, or (on array elements) the array's struct tag
	StructGUID [16]byte // the struct property header's 16-byte GUID field
	Fixed      any      // decoded fixed-layout value when StructTag is in structs.Registry; nil otherwise
	Children   []*Property

	InnerType         Tag      // Array only: the element type tag
	ElementName       string   // struct-array only: the per-element prototype's name
	ElementStructGUID [16]byte // struct-array only: the prototype header's GUID field
	ElementArrayIndex int32    // struct-array only: the prototype header's own array-index field, preserved verbatim; must be 0 to encode

	Int32Arr   []int32   // Array of Int elements
	Float32Arr []float32 // Array of Float elements
	StrArr     []string  // Array of Str elements
	ByteArr    []byte    // Array of Byte elements, populated only for Array+InnerType==TagByte

	MapKeyType string
	MapValType string
	MapRaw     []byte // opaque map body, preserved verbatim
}

// Document is a decoded top-level property stream: its property list plus
// whatever followed the None sentinel. TrailingPad is nil if the stream
// ended immediately after the sentinel; otherwise it holds the literal
// bytes observed (normally four zeros, but tolerated as arbitrary on read
// and preserved verbatim on write).
type Document struct {
	Properties  []*Property
	TrailingPad []byte
}

// NewDocument wraps properties as a Document with the default top-level
// framing: a four-zero-byte trailing pad, matching the reference encoder's
// behavior for freshly authored (not decoded) trees.
func NewDocument(properties []*Property) *Document {
	return &Document{Properties: properties, TrailingPad: []byte{0, 0, 0, 0}}
}

// Validate checks that p carries the attributes its Type requires,
// rejecting the unrepresentable states the codec must catch before
// encoding (see errs for the specific sentinels).
func (p *Property) Validate() error {
	if p.Name == "" {
		return errs.ErrEmptyName
	}

	if p.ArrayIndex != 0 {
		return errs.ErrNonZeroArrayIndex
	}

	switch p.Type {
	case TagArray:
		switch p.InnerType {
		case TagInt32, TagFloat32, TagString, TagByte, TagStruct:
		default:
			return errs.ErrMissingInnerType
		}

		if p.InnerType == TagStruct {
			if p.StructTag == "" {
				return errs.ErrMissingStructTag
			}

			if p.ElementArrayIndex != 0 {
				return errs.ErrNonZeroArrayIndex
			}
		}
	case TagStruct:
		if p.StructTag == "" {
			return errs.ErrMissingStructTag
		}
	case TagInt32, TagUInt32, TagInt64, TagFloat32, TagFloat64, TagBool,
		TagString, TagName, TagEnum, TagByte, TagMap:
		// no composite attributes to validate
	}

	return nil
}

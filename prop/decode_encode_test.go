package prop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-tools/mountsave/errs"
	"github.com/icarus-tools/mountsave/prop"
	"github.com/icarus-tools/mountsave/structs"
)

// buildSimpleDoc returns a small tree exercising a scalar, a bool, a string,
// and a plain struct property.
func buildSimpleDoc() *prop.Document {
	properties := []*prop.Property{
		{Name: "Level", Type: prop.TagInt32, Int32Val: 7},
		{Name: "IsMounted", Type: prop.TagBool, BoolVal: true},
		{Name: "MountName", Type: prop.TagString, StrVal: "Korok", StrPresent: true},
		{
			Name:      "Position",
			Type:      prop.TagStruct,
			StructTag: "Vector",
			Fixed:     structs.Vector{X: 1, Y: 2, Z: 3},
		},
	}

	return prop.NewDocument(properties)
}

func TestDecode_EmptyPropertyList(t *testing.T) {
	data, err := prop.Encode(prop.NewDocument(nil))
	require.NoError(t, err)

	doc, err := prop.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, doc.Properties)
	assert.Equal(t, []byte{0, 0, 0, 0}, doc.TrailingPad)
}

func TestEncodeDecode_ScalarRoundTrip(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Level", Type: prop.TagInt32, Int32Val: 42},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	assert.Equal(t, int32(42), got.Properties[0].Int32Val)
}

func TestEncodeDecode_BoolRoundTripAndZeroSize(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "IsMounted", Type: prop.TagBool, BoolVal: true},
		{Name: "IsSaddled", Type: prop.TagBool, BoolVal: false},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	// name(14=4+10) + type(17=4+13) + size(4) + arrIdx(4) + value(1) + pad(1) = 41
	// "IsMounted" -> 9 chars + NUL = 10, prefix 4 -> 14; "BoolProperty" -> 12+NUL=13, prefix 4 -> 17
	assert.Equal(t, uint32(0), sizeFieldOf(t, data, 0))

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 2)
	assert.True(t, got.Properties[0].BoolVal)
	assert.False(t, got.Properties[1].BoolVal)
}

// sizeFieldOf walks the property stream's nth property header by hand and
// returns its declared size field, to assert the Bool-is-always-zero
// invariant at the byte level rather than only through a round trip.
func sizeFieldOf(t *testing.T, data []byte, n int) uint32 {
	t.Helper()

	pos := 0

	readString := func() string {
		length := int32(data[pos]) | int32(data[pos+1])<<8 | int32(data[pos+2])<<16 | int32(data[pos+3])<<24
		pos += 4

		if length == 0 {
			return ""
		}

		s := string(data[pos : pos+int(length)-1])
		pos += int(length)

		return s
	}

	for i := 0; i <= n; i++ {
		readString() // name
		readString() // type

		size := uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16 | uint32(data[pos+3])<<24
		pos += 4 + 4 // size field + array index

		if i == n {
			return size
		}

		pos += int(size) + 1 // value region plus the leading padding byte
	}

	t.Fatalf("property index %d not found", n)

	return 0
}

func TestEncodeDecode_StringPresentVsAbsent(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Nickname", Type: prop.TagString, StrPresent: false},
		{Name: "Title", Type: prop.TagString, StrVal: "", StrPresent: true},
		{Name: "Realm", Type: prop.TagString, StrVal: "Olympus", StrPresent: true},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 3)

	assert.False(t, got.Properties[0].StrPresent)
	assert.True(t, got.Properties[1].StrPresent)
	assert.Equal(t, "", got.Properties[1].StrVal)
	assert.Equal(t, "Olympus", got.Properties[2].StrVal)
}

func TestEncodeDecode_WideString(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "MountName", Type: prop.TagString, StrVal: "Koéala", StrPresent: true},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Koéala", got.Properties[0].StrVal)
}

func TestEncodeDecode_PlainStruct(t *testing.T) {
	doc := buildSimpleDoc()

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 4)

	pos := got.Properties[3]
	assert.Equal(t, "Vector", pos.StructTag)
}

func TestEncodeDecode_NestedPropertyBearingStruct(t *testing.T) {
	inner := []*prop.Property{
		{Name: "Current", Type: prop.TagFloat32, Float32Val: 55.5},
		{Name: "Max", Type: prop.TagFloat32, Float32Val: 100},
	}

	doc := prop.NewDocument([]*prop.Property{
		{Name: "Stamina", Type: prop.TagStruct, StructTag: "StaminaData", Children: inner},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	require.Len(t, got.Properties[0].Children, 2)
	assert.Equal(t, float32(55.5), got.Properties[0].Children[0].Float32Val)
}

func TestEncodeDecode_PrimitiveArray(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Tags", Type: prop.TagArray, InnerType: prop.TagString, StrArr: []string{"Fast", "Loyal"}},
		{Name: "Levels", Type: prop.TagArray, InnerType: prop.TagInt32, Int32Arr: []int32{1, 2, 3}},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 2)
	assert.Equal(t, []string{"Fast", "Loyal"}, got.Properties[0].StrArr)
	assert.Equal(t, []int32{1, 2, 3}, got.Properties[1].Int32Arr)
}

func TestEncodeDecode_StructArray(t *testing.T) {
	elem1 := &prop.Property{
		Name: "Mounts", Type: prop.TagStruct, StructTag: "MountEntry",
		Children: []*prop.Property{
			{Name: "Species", Type: prop.TagString, StrVal: "Deinonychus", StrPresent: true},
		},
	}
	elem2 := &prop.Property{
		Name: "Mounts", Type: prop.TagStruct, StructTag: "MountEntry",
		Children: []*prop.Property{
			{Name: "Species", Type: prop.TagString, StrVal: "Gaja", StrPresent: true},
		},
	}

	doc := prop.NewDocument([]*prop.Property{
		{
			Name: "Mounts", Type: prop.TagArray, InnerType: prop.TagStruct,
			StructTag: "MountEntry", ElementName: "Mounts",
			Children: []*prop.Property{elem1, elem2},
		},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	require.Len(t, got.Properties[0].Children, 2)
	assert.Equal(t, "Deinonychus", got.Properties[0].Children[0].Children[0].StrVal)
	assert.Equal(t, "Gaja", got.Properties[0].Children[1].Children[0].StrVal)
}

func TestEncodeDecode_StructArrayClearedToEmpty(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{
			Name: "Mounts", Type: prop.TagArray, InnerType: prop.TagStruct,
			StructTag: "MountEntry", ElementName: "Mounts",
			Children: nil,
		},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Properties[0].Children)
}

func TestEncode_RejectsNonZeroArrayIndex(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Level", Type: prop.TagInt32, Int32Val: 1, ArrayIndex: 3},
	})

	_, err := prop.Encode(doc)
	require.ErrorIs(t, err, errs.ErrNonZeroArrayIndex)
}

func TestEncodeDecode_StructArrayPreservesElementArrayIndex(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{
			Name: "Mounts", Type: prop.TagArray, InnerType: prop.TagStruct,
			StructTag: "MountEntry", ElementName: "Mounts",
			Children: nil,
		},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.Properties[0].ElementArrayIndex)
}

func TestEncode_RejectsNonZeroElementArrayIndex(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{
			Name: "Mounts", Type: prop.TagArray, InnerType: prop.TagStruct,
			StructTag: "MountEntry", ElementName: "Mounts",
			ElementArrayIndex: 1,
		},
	})

	_, err := prop.Encode(doc)
	require.ErrorIs(t, err, errs.ErrNonZeroArrayIndex)
}

func TestEncode_RejectsEmptyName(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "", Type: prop.TagInt32},
	})

	_, err := prop.Encode(doc)
	require.ErrorIs(t, err, errs.ErrEmptyName)
}

func TestEncode_RejectsArrayMissingInnerType(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Tags", Type: prop.TagArray},
	})

	_, err := prop.Encode(doc)
	require.ErrorIs(t, err, errs.ErrMissingInnerType)
}

func TestEncode_RejectsStructMissingTag(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Position", Type: prop.TagStruct},
	})

	_, err := prop.Encode(doc)
	require.ErrorIs(t, err, errs.ErrMissingStructTag)
}

func TestDecode_ErrorOnTruncatedStruct(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{
			Name:      "Position",
			Type:      prop.TagStruct,
			StructTag: "Vector",
			Fixed:     structs.Vector{X: 1, Y: 2, Z: 3},
		},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	// Truncate the buffer so the fixed-layout decode can't read all 12 bytes:
	// the 13 bytes after the Vector (None terminator 9 + trailing pad 4) go,
	// plus the Vector's last 4 bytes.
	truncated := data[:len(data)-17]

	_, err = prop.Decode(truncated)
	require.Error(t, err)
}

func TestScenario_IntegerMutation(t *testing.T) {
	doc := prop.NewDocument([]*prop.Property{
		{Name: "Gold", Type: prop.TagInt32, Int32Val: 100},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)

	got.Properties[0].Int32Val = 1150000

	data2, err := prop.Encode(got)
	require.NoError(t, err)

	got2, err := prop.Decode(data2)
	require.NoError(t, err)
	assert.Equal(t, int32(1150000), got2.Properties[0].Int32Val)
}

func TestScenario_NestedStructFloatMutation(t *testing.T) {
	inner := []*prop.Property{
		{Name: "Current", Type: prop.TagFloat32, Float32Val: 55.5},
	}

	doc := prop.NewDocument([]*prop.Property{
		{Name: "Stamina", Type: prop.TagStruct, StructTag: "StaminaData", Children: inner},
	})

	data, err := prop.Encode(doc)
	require.NoError(t, err)

	got, err := prop.Decode(data)
	require.NoError(t, err)

	got.Properties[0].Children[0].Float32Val = 12.25

	data2, err := prop.Encode(got)
	require.NoError(t, err)

	got2, err := prop.Decode(data2)
	require.NoError(t, err)
	assert.Equal(t, float32(12.25), got2.Properties[0].Children[0].Float32Val)
}

func TestClone_ProducesEquivalentTree(t *testing.T) {
	doc := buildSimpleDoc()

	clone, err := prop.Clone(doc)
	require.NoError(t, err)
	require.Len(t, clone.Properties, len(doc.Properties))
	assert.Equal(t, doc.Properties[0].Int32Val, clone.Properties[0].Int32Val)
	assert.Equal(t, doc.Properties[2].StrVal, clone.Properties[2].StrVal)
}

func TestFind_ScalarAndMissingPaths(t *testing.T) {
	doc := buildSimpleDoc()

	level, err := prop.Find(doc, "Level")
	require.NoError(t, err)
	assert.Equal(t, int32(7), level.Int32Val)

	_, err = prop.Find(doc, "Missing")
	require.ErrorIs(t, err, errs.ErrPathNotFound)
}

func TestFind_StructArrayIndexSegment(t *testing.T) {
	elem1 := &prop.Property{
		Name: "Mounts", Type: prop.TagStruct, StructTag: "MountEntry",
		Children: []*prop.Property{
			{Name: "Species", Type: prop.TagString, StrVal: "Deinonychus", StrPresent: true},
		},
	}
	elem2 := &prop.Property{
		Name: "Mounts", Type: prop.TagStruct, StructTag: "MountEntry",
		Children: []*prop.Property{
			{Name: "Species", Type: prop.TagString, StrVal: "Gaja", StrPresent: true},
		},
	}

	doc := prop.NewDocument([]*prop.Property{
		{
			Name: "Mounts", Type: prop.TagArray, InnerType: prop.TagStruct,
			StructTag: "MountEntry", ElementName: "Mounts",
			Children: []*prop.Property{elem1, elem2},
		},
	})

	species, err := prop.Find(doc, "Mounts[1].Species")
	require.NoError(t, err)
	assert.Equal(t, "Gaja", species.StrVal)

	_, err = prop.Find(doc, "Mounts[5].Species")
	require.ErrorIs(t, err, errs.ErrPathNotFound)
}

func TestSet_OverwritesScalarValue(t *testing.T) {
	doc := buildSimpleDoc()

	err := prop.Set(doc, "Level", &prop.Property{Int32Val: 99})
	require.NoError(t, err)

	level, err := prop.Find(doc, "Level")
	require.NoError(t, err)
	assert.Equal(t, int32(99), level.Int32Val)
}

func TestSet_PathNotFound(t *testing.T) {
	doc := buildSimpleDoc()

	err := prop.Set(doc, "Nope", &prop.Property{Int32Val: 1})
	require.ErrorIs(t, err, errs.ErrPathNotFound)
}

func TestDuplicateNames_DetectsRepeatedSiblingName(t *testing.T) {
	properties := []*prop.Property{
		{Name: "Level", Type: prop.TagInt32, Int32Val: 1},
		{Name: "Level", Type: prop.TagInt32, Int32Val: 2},
		{Name: "Gold", Type: prop.TagInt32, Int32Val: 3},
	}

	dupes := prop.DuplicateNames(properties)
	assert.Equal(t, []string{"Level"}, dupes)
}

func TestDuplicateNames_NoneWhenAllUnique(t *testing.T) {
	properties := []*prop.Property{
		{Name: "Level", Type: prop.TagInt32},
		{Name: "Gold", Type: prop.TagInt32},
	}

	assert.Empty(t, prop.DuplicateNames(properties))
}

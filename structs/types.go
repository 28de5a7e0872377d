package structs

import "github.com/google/uuid"

// Vector is the fixed-layout "Vector" struct kind: three little-endian
// 32-bit floats, x, y, z.
type Vector struct {
	X, Y, Z float32
}

// Vector2D is the fixed-layout "Vector2D" struct kind: two little-endian
// 32-bit floats, x, y.
type Vector2D struct {
	X, Y float32
}

// Rotator is the fixed-layout "Rotator" struct kind: pitch, yaw, roll as
// little-endian 32-bit floats.
type Rotator struct {
	Pitch, Yaw, Roll float32
}

// Quat is the fixed-layout "Quat" struct kind: x, y, z, w as little-endian
// 32-bit floats.
type Quat struct {
	X, Y, Z, W float32
}

// LinearColor is the fixed-layout "LinearColor" struct kind: r, g, b, a as
// little-endian 32-bit floats.
type LinearColor struct {
	R, G, B, A float32
}

// Color is the fixed-layout "Color" struct kind: four bytes stored in the
// on-disk order B, G, R, A (not R, G, B, A).
type Color struct {
	B, G, R, A byte
}

// Guid is the fixed-layout "Guid" struct kind: 16 raw bytes. The reference
// encoder always writes zeros; the codec must tolerate arbitrary bytes on
// read and preserve them verbatim on write.
type Guid struct {
	Bytes [16]byte
}

// String renders the GUID in canonical 8-4-4-4-12 hex form for diagnostics
// and higher-layer display; it is not used by the codec itself.
func (g Guid) String() string {
	return uuid.UUID(g.Bytes).String()
}

// ParseGuid parses a canonical UUID string into the raw 16-byte layout the
// codec writes. It is a convenience for collaborators constructing trees by
// hand; the codec never calls it.
func ParseGuid(s string) (Guid, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Guid{}, err
	}

	return Guid{Bytes: [16]byte(id)}, nil
}

// DateTime is the fixed-layout "DateTime" struct kind: a signed 64-bit tick
// count, meaning left to the caller.
type DateTime struct {
	Ticks int64
}

// Timespan is the fixed-layout "Timespan" struct kind: a signed 64-bit tick
// count, meaning left to the caller.
type Timespan struct {
	Ticks int64
}

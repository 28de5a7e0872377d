package structs

import (
	"github.com/icarus-tools/mountsave/bytestream"
	"github.com/icarus-tools/mountsave/errs"
)

// Codec decodes and encodes one fixed-layout struct kind by byte-exact
// layout. Size is constant per kind; it never depends on the decoded value.
type Codec interface {
	Size() int
	Decode(r *bytestream.Reader) (any, error)
	Encode(w *bytestream.Writer, v any) error
}

type vectorCodec struct{}

func (vectorCodec) Size() int { return 12 }

func (vectorCodec) Decode(r *bytestream.Reader) (any, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	y, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	z, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	return Vector{X: x, Y: y, Z: z}, nil
}

func (vectorCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Vector)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteFloat32(val.X)
	w.WriteFloat32(val.Y)
	w.WriteFloat32(val.Z)

	return nil
}

type vector2DCodec struct{}

func (vector2DCodec) Size() int { return 8 }

func (vector2DCodec) Decode(r *bytestream.Reader) (any, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	y, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	return Vector2D{X: x, Y: y}, nil
}

func (vector2DCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Vector2D)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteFloat32(val.X)
	w.WriteFloat32(val.Y)

	return nil
}

type rotatorCodec struct{}

func (rotatorCodec) Size() int { return 12 }

func (rotatorCodec) Decode(r *bytestream.Reader) (any, error) {
	pitch, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	yaw, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	roll, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}, nil
}

func (rotatorCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Rotator)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteFloat32(val.Pitch)
	w.WriteFloat32(val.Yaw)
	w.WriteFloat32(val.Roll)

	return nil
}

type quatCodec struct{}

func (quatCodec) Size() int { return 16 }

func (quatCodec) Decode(r *bytestream.Reader) (any, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	y, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	z, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	w4, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	return Quat{X: x, Y: y, Z: z, W: w4}, nil
}

func (quatCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Quat)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteFloat32(val.X)
	w.WriteFloat32(val.Y)
	w.WriteFloat32(val.Z)
	w.WriteFloat32(val.W)

	return nil
}

type linearColorCodec struct{}

func (linearColorCodec) Size() int { return 16 }

func (linearColorCodec) Decode(r *bytestream.Reader) (any, error) {
	red, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	green, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	blue, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	alpha, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	return LinearColor{R: red, G: green, B: blue, A: alpha}, nil
}

func (linearColorCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(LinearColor)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteFloat32(val.R)
	w.WriteFloat32(val.G)
	w.WriteFloat32(val.B)
	w.WriteFloat32(val.A)

	return nil
}

type colorCodec struct{}

func (colorCodec) Size() int { return 4 }

func (colorCodec) Decode(r *bytestream.Reader) (any, error) {
	raw, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}

	return Color{B: raw[0], G: raw[1], R: raw[2], A: raw[3]}, nil
}

func (colorCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Color)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteBytes([]byte{val.B, val.G, val.R, val.A})

	return nil
}

type guidCodec struct{}

func (guidCodec) Size() int { return 16 }

func (guidCodec) Decode(r *bytestream.Reader) (any, error) {
	raw, err := r.ReadBytes(16)
	if err != nil {
		return nil, err
	}

	var g Guid
	copy(g.Bytes[:], raw)

	return g, nil
}

func (guidCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Guid)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteBytes(val.Bytes[:])

	return nil
}

type dateTimeCodec struct{}

func (dateTimeCodec) Size() int { return 8 }

func (dateTimeCodec) Decode(r *bytestream.Reader) (any, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return DateTime{Ticks: ticks}, nil
}

func (dateTimeCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(DateTime)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteInt64(val.Ticks)

	return nil
}

type timespanCodec struct{}

func (timespanCodec) Size() int { return 8 }

func (timespanCodec) Decode(r *bytestream.Reader) (any, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}

	return Timespan{Ticks: ticks}, nil
}

func (timespanCodec) Encode(w *bytestream.Writer, v any) error {
	val, ok := v.(Timespan)
	if !ok {
		return errs.ErrUnknownFixedStruct
	}

	w.WriteInt64(val.Ticks)

	return nil
}

// Registry maps a struct tag to its fixed-layout Codec. Struct tags not
// present here are property-bearing: the prop package decodes their value as
// a nested property list instead of consulting this registry.
var Registry = map[string]Codec{
	"Vector":      vectorCodec{},
	"Vector2D":    vector2DCodec{},
	"Rotator":     rotatorCodec{},
	"Quat":        quatCodec{},
	"LinearColor": linearColorCodec{},
	"Color":       colorCodec{},
	"Guid":        guidCodec{},
	"DateTime":    dateTimeCodec{},
	"Timespan":    timespanCodec{},
}

// Lookup returns the Codec registered for tag and whether one was found.
func Lookup(tag string) (Codec, bool) {
	c, ok := Registry[tag]
	return c, ok
}

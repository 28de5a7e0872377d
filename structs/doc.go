// Package structs holds the closed, static registry of fixed-layout struct
// kinds the property codec dispatches on (component 4.B of the codec design):
// Vector, Vector2D, Rotator, Quat, LinearColor, Color, Guid, DateTime, and
// Timespan. Every one of these decodes and encodes by a byte-exact layout
// with no nested properties, as opposed to a property-bearing struct, whose
// body is a nested property list handled by the prop package instead.
//
// Adding a new fixed-layout kind means adding one Codec entry to Registry; no
// other package needs to change.
package structs

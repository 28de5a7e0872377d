// Package prop implements the property-tagged binary codec: components 4.C
// (property codec) and 4.D (property-list codec) of the design.
//
// A Document is the decoded form of a full property stream: an ordered list
// of Property records plus whatever trailing padding followed the closing
// None sentinel. A Property is the uniform node described by the data model
// — every decoded property, whether a leaf (an int, a string, a struct
// reference) or a composite (a struct body, a struct array), is the same
// Property type, with the fields relevant to its Type populated and the
// rest left zero.
//
// Decode and Encode are exact inverses on well-formed input: for any blob b
// produced by the reference encoder, Encode(Decode(b)) reproduces b
// byte-for-byte, and for any tree t, Decode(Encode(t)) yields a tree
// structurally equal to t. Clone is built on top of these two primitives;
// Find and Set walk an already decoded tree. None of them hold state across
// calls.
package prop

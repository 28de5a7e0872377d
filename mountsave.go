// Package mountsave provides a property-tagged binary codec for
// Icarus-style game save property streams.
//
// A save file's mount data is stored as an ordered list of self-describing,
// length-prefixed properties terminated by a None sentinel. Each property
// carries a name, a type tag, a declared size covering exactly its value
// bytes, and a type-specific body. mountsave.Decode parses that stream into
// a tree of prop.Property nodes; mountsave.Encode serializes the tree back,
// reproducing the original bytes exactly when the tree is unmodified.
//
// # Basic Usage
//
// Decoding a save file's property stream and reading a value:
//
//	import "github.com/icarus-tools/mountsave"
//
//	doc, err := mountsave.Decode(data)
//	level, err := mountsave.Find(doc, "Mounts[0].Level")
//
// Mutating a value and re-encoding:
//
//	err = mountsave.Set(doc, "Mounts[0].Level", &prop.Property{Int32Val: 12})
//	out, err := mountsave.Encode(doc)
//
// # Package Structure
//
// This package is a thin convenience wrapper around the prop package, which
// holds the full data model and codec logic. For anything beyond the common
// decode/find/set/encode/clone flow, use prop directly.
package mountsave

import "github.com/icarus-tools/mountsave/prop"

// Document is the decoded form of a property stream.
type Document = prop.Document

// Property is the uniform decoded node type; see prop.Property for the
// full field-by-type reference.
type Property = prop.Property

// Decode parses a full property stream into a Document.
func Decode(data []byte) (*Document, error) {
	return prop.Decode(data)
}

// Encode serializes doc back into a property stream.
func Encode(doc *Document) ([]byte, error) {
	return prop.Encode(doc)
}

// Find resolves a dotted path against doc and returns the matching
// property, or errs.ErrPathNotFound if no property matches.
func Find(doc *Document, path string) (*Property, error) {
	return prop.Find(doc, path)
}

// Set resolves path against doc and overwrites the matching property's
// scalar value fields with those of value (see prop.Set).
func Set(doc *Document, path string, value *Property) error {
	return prop.Set(doc, path, value)
}

// Clone returns an independent copy of doc.
func Clone(doc *Document) (*Document, error) {
	return prop.Clone(doc)
}

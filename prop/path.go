package prop

import (
	"strconv"
	"strings"

	"github.com/icarus-tools/mountsave/errs"
)

// Find resolves a dotted path against doc's top-level property list and
// returns the matching Property. A path is a dot-separated sequence of
// segments; each segment is a property name optionally followed by a
// bracketed index, name[index], selecting the index'th element of a
// struct-array property named name. A bare name with no index selects the
// named property itself, whatever its type, and descends into its children
// when followed by further segments.
func Find(doc *Document, path string) (*Property, error) {
	if path == "" {
		return nil, errs.ErrPathNotFound
	}

	segments := strings.Split(path, ".")
	properties := doc.Properties

	var current *Property

	for i, seg := range segments {
		name, index, hasIndex, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}

		found := findByName(properties, name)
		if found == nil {
			return nil, errs.ErrPathNotFound
		}

		current = found

		if hasIndex {
			if found.Type != TagArray || found.InnerType != TagStruct {
				return nil, errs.ErrPathNotFound
			}

			if index < 0 || index >= len(found.Children) {
				return nil, errs.ErrPathNotFound
			}

			current = found.Children[index]
		}

		if i < len(segments)-1 {
			properties = current.Children
			if properties == nil {
				return nil, errs.ErrPathNotFound
			}
		}
	}

	return current, nil
}

// parseSegment splits a single path segment into its name and optional
// bracketed index, e.g. "Mounts[2]" -> ("Mounts", 2, true, nil).
func parseSegment(seg string) (name string, index int, hasIndex bool, err error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		if seg == "" {
			return "", 0, false, errs.ErrPathNotFound
		}

		return seg, 0, false, nil
	}

	if !strings.HasSuffix(seg, "]") {
		return "", 0, false, errs.ErrPathNotFound
	}

	name = seg[:open]
	if name == "" {
		return "", 0, false, errs.ErrPathNotFound
	}

	idxStr := seg[open+1 : len(seg)-1]

	idx, convErr := strconv.Atoi(idxStr)
	if convErr != nil {
		return "", 0, false, errs.ErrPathNotFound
	}

	return name, idx, true, nil
}

func findByName(properties []*Property, name string) *Property {
	for _, p := range properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Set resolves path and overwrites the matching property's scalar value
// fields (BoolVal, the numeric fields, ByteVal, StrVal, StrPresent) with
// those of value. Every other field is left untouched: Name, Type, the
// structural fields (InnerType, StructTag, Children), the fixed-layout value
// Fixed, the array slices, and the map body. Set reports
// errs.ErrPathNotFound rather than silently failing when path does not
// resolve, matching the codec's interface contract.
func Set(doc *Document, path string, value *Property) error {
	target, err := Find(doc, path)
	if err != nil {
		return err
	}

	target.BoolVal = value.BoolVal
	target.Int32Val = value.Int32Val
	target.UInt32Val = value.UInt32Val
	target.Int64Val = value.Int64Val
	target.Float32Val = value.Float32Val
	target.Float64Val = value.Float64Val
	target.ByteVal = value.ByteVal
	target.StrVal = value.StrVal
	target.StrPresent = value.StrPresent

	return nil
}

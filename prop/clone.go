package prop

// Clone returns an independent copy of doc by round-tripping it through the
// wire format: encode, then decode. This guarantees the clone shares no
// backing arrays with doc and is exactly what a fresh Decode of doc's bytes
// would produce, rather than risking a hand-rolled deep copy drifting out
// of sync with the data model.
func Clone(doc *Document) (*Document, error) {
	data, err := Encode(doc)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

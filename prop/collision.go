package prop

import "github.com/cespare/xxhash/v2"

// nameID computes the xxHash64 identity used to detect sibling name
// collisions within a single property list.
func nameID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// collisionTracker detects duplicate sibling property names within a single
// property list. Two properties sharing a name within the same list is legal
// on the wire (the format has no uniqueness constraint) but is never expected
// in practice, so DuplicateNames reports it as diagnostic information; Decode
// and Encode do not check for it.
type collisionTracker struct {
	seen    map[uint64]string
	dupes   []string
	dupeSet map[string]bool
}

func newCollisionTracker() *collisionTracker {
	return &collisionTracker{
		seen:    make(map[uint64]string),
		dupeSet: make(map[string]bool),
	}
}

// Observe records name; if the same name was already observed in this list,
// it is added (once) to the duplicates returned by Duplicates.
func (t *collisionTracker) Observe(name string) {
	id := nameID(name)

	if existing, ok := t.seen[id]; ok && existing == name {
		if !t.dupeSet[name] {
			t.dupeSet[name] = true
			t.dupes = append(t.dupes, name)
		}

		return
	}

	t.seen[id] = name
}

// Duplicates returns the sibling names that appeared more than once, in
// first-seen order.
func (t *collisionTracker) Duplicates() []string {
	return t.dupes
}

// DuplicateNames reports the sibling property names that repeat within
// properties, should a caller want to inspect a decoded list for the
// diagnostic case noted above.
func DuplicateNames(properties []*Property) []string {
	tracker := newCollisionTracker()
	for _, p := range properties {
		tracker.Observe(p.Name)
	}

	return tracker.Duplicates()
}

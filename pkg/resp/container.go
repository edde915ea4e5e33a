package resp

import "github.com/google/btree"

// btreeDegree keeps nodes small; most RESP maps and sets hold a handful of
// entries.
const btreeDegree = 8

type mapEntry struct {
	key   string
	value Frame
}

func lessEntry(a, b mapEntry) bool { return a.key < b.key }

// Map is an ordered text-keyed map. Keys are unique and iterate in
// ascending byte order, which makes encoding deterministic.
//
// A Map is not safe for concurrent mutation. Read-only methods may run
// concurrently with each other.
type Map struct {
	tree *btree.BTreeG[mapEntry]
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{tree: btree.NewG(btreeDegree, lessEntry)}
}

// Insert stores value under key, replacing any previous value. Keys must
// satisfy ValidLine because they are encoded as simple strings.
func (m *Map) Insert(key string, value Frame) error {
	if err := validLine(key); err != nil {
		return err
	}
	m.insert(key, value)
	return nil
}

func (m *Map) insert(key string, value Frame) {
	if m.tree == nil {
		m.tree = btree.NewG(btreeDegree, lessEntry)
	}
	m.tree.ReplaceOrInsert(mapEntry{key: key, value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Frame, bool) {
	if m == nil || m.tree == nil {
		return nil, false
	}
	e, ok := m.tree.Get(mapEntry{key: key})
	return e.value, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil || m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Ascend calls fn for each entry in key order until fn returns false.
func (m *Map) Ascend(fn func(key string, value Frame) bool) {
	if m == nil || m.tree == nil {
		return
	}
	m.tree.Ascend(func(e mapEntry) bool { return fn(e.key, e.value) })
}

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Ascend(func(k string, _ Frame) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m *Map) entries() []mapEntry {
	out := make([]mapEntry, 0, m.Len())
	m.Ascend(func(k string, v Frame) bool {
		out = append(out, mapEntry{key: k, value: v})
		return true
	})
	return out
}

// Set is an ordered collection of unique frames, ordered by Compare.
//
// Members must not be mutated after insertion. The same concurrency rules
// as Map apply.
type Set struct {
	tree *btree.BTreeG[Frame]
}

func lessFrame(a, b Frame) bool { return Compare(a, b) < 0 }

// NewSet returns a Set holding members, with duplicates collapsed.
func NewSet(members ...Frame) *Set {
	s := &Set{tree: btree.NewG(btreeDegree, lessFrame)}
	for _, f := range members {
		s.Insert(f)
	}
	return s
}

// Insert adds f and reports whether it was not already present.
func (s *Set) Insert(f Frame) bool {
	if s.tree == nil {
		s.tree = btree.NewG(btreeDegree, lessFrame)
	}
	_, replaced := s.tree.ReplaceOrInsert(f)
	return !replaced
}

// Contains reports whether a frame equal to f is a member.
func (s *Set) Contains(f Frame) bool {
	if s == nil || s.tree == nil {
		return false
	}
	return s.tree.Has(f)
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Ascend calls fn for each member in order until fn returns false.
func (s *Set) Ascend(fn func(Frame) bool) {
	if s == nil || s.tree == nil {
		return
	}
	s.tree.Ascend(func(f Frame) bool { return fn(f) })
}

// Members returns the members in order.
func (s *Set) Members() []Frame {
	out := make([]Frame, 0, s.Len())
	s.Ascend(func(f Frame) bool {
		out = append(out, f)
		return true
	})
	return out
}

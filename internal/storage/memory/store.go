package memory

import (
	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// Store is the sharded in-memory keyspace.
type Store struct {
	strings *cmap.Map[string, resp.Frame]
	hashes  *cmap.Map[string, *hash]
	sets    *cmap.Map[string, *resp.Set]
}

// Option configures the Store.
type Option func(*options)

type options struct {
	shards int
}

// WithShardCount sets the shard count of every table. Values that are not
// a power of two fall back to cmap.DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := options{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		strings: cmap.NewWithShards[string, resp.Frame](o.shards),
		hashes:  cmap.NewWithShards[string, *hash](o.shards),
		sets:    cmap.NewWithShards[string, *resp.Set](o.shards),
	}
}

// ============================================================================
// Strings
// ============================================================================

// Get returns the frame stored under key.
func (s *Store) Get(key string) (resp.Frame, bool) {
	return s.strings.Get(key)
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value resp.Frame) {
	s.strings.Set(key, value)
}

// ============================================================================
// Hashes
// ============================================================================

// HSet stores value under field in the hash at key, creating the hash if
// needed.
func (s *Store) HSet(key, field string, value resp.Frame) {
	s.hashes.Update(key, func(h *hash, ok bool) *hash {
		if !ok {
			h = newHash()
		}
		h.put(field, value)
		return h
	})
}

// HGet returns one field of the hash at key.
func (s *Store) HGet(key, field string) (value resp.Frame, found bool) {
	s.hashes.View(key, func(h *hash, ok bool) {
		if ok {
			value, found = h.get(field)
		}
	})
	return value, found
}

// HGetAll returns a snapshot of every field of the hash at key, ordered by
// field name. found is false when the key holds no hash.
func (s *Store) HGetAll(key string) (fields []Field, found bool) {
	s.hashes.View(key, func(h *hash, ok bool) {
		if ok {
			fields, found = h.fields(), true
		}
	})
	return fields, found
}

// HMGet returns the values of the requested fields in request order. Absent
// fields, or every field when the key is missing, are nil.
func (s *Store) HMGet(key string, fields []string) []resp.Frame {
	out := make([]resp.Frame, len(fields))
	s.hashes.View(key, func(h *hash, ok bool) {
		if !ok {
			return
		}
		for i, f := range fields {
			if v, found := h.get(f); found {
				out[i] = v
			}
		}
	})
	return out
}

// ============================================================================
// Sets
// ============================================================================

// SAdd adds members to the set at key and returns how many were new.
func (s *Store) SAdd(key string, members ...resp.Frame) int {
	added := 0
	s.sets.Update(key, func(set *resp.Set, ok bool) *resp.Set {
		if !ok {
			set = resp.NewSet()
		}
		for _, m := range members {
			if set.Insert(m) {
				added++
			}
		}
		return set
	})
	return added
}

// SIsMember reports whether member belongs to the set at key.
func (s *Store) SIsMember(key string, member resp.Frame) (found bool) {
	s.sets.View(key, func(set *resp.Set, ok bool) {
		found = ok && set.Contains(member)
	})
	return found
}

// ============================================================================
// Introspection
// ============================================================================

// Stats reports the number of keys per table.
type Stats struct {
	Strings int
	Hashes  int
	Sets    int
}

// Stats returns current key counts. The counts are gathered shard by shard
// and may be slightly stale under concurrent writes.
func (s *Store) Stats() Stats {
	return Stats{
		Strings: s.strings.Count(),
		Hashes:  s.hashes.Count(),
		Sets:    s.sets.Count(),
	}
}


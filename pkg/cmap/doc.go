// Package cmap provides a sharded concurrent map for string-like keys.
//
// Keys are spread over a power-of-two number of shards by a seeded
// murmur3 hash; each shard is a plain Go map behind its own RWMutex, so
// operations on keys in different shards never contend.
//
// Values that are themselves mutable containers should only be touched
// inside Update (write lock) or View (read lock):
//
//	m := cmap.New[string, *Hash]()
//	m.Update("user:1", func(h *Hash, ok bool) *Hash {
//		if !ok {
//			h = newHash()
//		}
//		h.put("name", v)
//		return h
//	})
//
// Range and Count lock one shard at a time, so they observe a per-shard
// consistent but not a global snapshot.
package cmap

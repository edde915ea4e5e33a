// Package memory provides the in-memory keyspace behind the command
// executor.
//
// The keyspace is split into three independent tables, each a sharded
// concurrent map:
//
//   - strings: key -> resp.Frame (GET/SET)
//   - hashes:  key -> field-ordered hash (HSET/HGET/HGETALL/HMGET)
//   - sets:    key -> resp.Set (SADD/SISMEMBER)
//
// Every operation touches exactly one key and runs under that key's shard
// lock, so single-key commands are atomic. There is no cross-table
// atomicity, no expiry and no eviction.
package memory

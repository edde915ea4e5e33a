package resp

import (
	"bytes"
	"cmp"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Compare defines a total order over frames. Frames of different kinds
// order by Kind; within a kind, text and bytes compare lexicographically,
// integers numerically, false before true, doubles by canonical text, and
// aggregates element-wise with the shorter prefix first. Maps compare as
// their sorted (key, value) sequences.
//
// Compare(a, b) == 0 exactly when Equal(a, b).
func Compare(a, b Frame) int {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch x := a.(type) {
	case SimpleString:
		return strings.Compare(string(x), string(b.(SimpleString)))
	case SimpleError:
		return strings.Compare(string(x), string(b.(SimpleError)))
	case Integer:
		return cmp.Compare(x, b.(Integer))
	case BulkString:
		return bytes.Compare(x, b.(BulkString))
	case BulkError:
		return bytes.Compare(x, b.(BulkError))
	case Boolean:
		return compareBool(bool(x), bool(b.(Boolean)))
	case Double:
		return strings.Compare(x.String(), b.(Double).String())
	case Array:
		return compareFrames(x, b.(Array))
	case *Map:
		return compareEntries(x.entries(), b.(*Map).entries())
	case *Set:
		return compareFrames(x.Members(), b.(*Set).Members())
	}
	// Null, NullBulkString, NullArray and nil carry no payload.
	return 0
}

// Equal reports whether a and b are the same value.
func Equal(a, b Frame) bool {
	return Compare(a, b) == 0
}

// Hash returns a 64-bit hash consistent with Equal: equal frames encode to
// identical bytes and therefore hash identically.
func Hash(f Frame) uint64 {
	return murmur3.Sum64(Encode(f))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareFrames(a, b []Frame) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareEntries(a, b []mapEntry) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i].key, b[i].key); c != 0 {
			return c
		}
		if c := Compare(a[i].value, b[i].value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

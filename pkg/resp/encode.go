package resp

import "strconv"

// Sentinel bytes.
const (
	prefixSimpleString = '+'
	prefixSimpleError  = '-'
	prefixInteger      = ':'
	prefixBulkString   = '$'
	prefixBulkError    = '!'
	prefixNull         = '_'
	prefixBoolean      = '#'
	prefixDouble       = ','
	prefixArray        = '*'
	prefixMap          = '%'
	prefixSet          = '~'
)

// Encode returns the wire form of f. Encoding never fails.
func Encode(f Frame) []byte {
	return AppendFrame(make([]byte, 0, encodedSizeHint(f)), f)
}

// AppendFrame appends the wire form of f to dst and returns the extended
// slice.
func AppendFrame(dst []byte, f Frame) []byte {
	switch v := f.(type) {
	case SimpleString:
		return appendLine(dst, prefixSimpleString, string(v))
	case SimpleError:
		return appendLine(dst, prefixSimpleError, string(v))
	case Integer:
		dst = append(dst, prefixInteger)
		if v >= 0 {
			dst = append(dst, '+')
		}
		dst = strconv.AppendInt(dst, int64(v), 10)
		return append(dst, crlf...)
	case BulkString:
		return appendBulk(dst, prefixBulkString, v)
	case NullBulkString:
		return append(dst, "$-1\r\n"...)
	case BulkError:
		return appendBulk(dst, prefixBulkError, v)
	case Boolean:
		if v {
			return append(dst, "#t\r\n"...)
		}
		return append(dst, "#f\r\n"...)
	case Double:
		return appendLine(dst, prefixDouble, v.String())
	case Array:
		dst = appendHeader(dst, prefixArray, len(v))
		for _, child := range v {
			dst = AppendFrame(dst, child)
		}
		return dst
	case NullArray:
		return append(dst, "*-1\r\n"...)
	case *Map:
		dst = appendHeader(dst, prefixMap, v.Len())
		v.Ascend(func(key string, value Frame) bool {
			dst = appendLine(dst, prefixSimpleString, key)
			dst = AppendFrame(dst, value)
			return true
		})
		return dst
	case *Set:
		dst = appendHeader(dst, prefixSet, v.Len())
		v.Ascend(func(member Frame) bool {
			dst = AppendFrame(dst, member)
			return true
		})
		return dst
	}
	// Null and nil.
	return append(dst, "_\r\n"...)
}

func appendLine(dst []byte, prefix byte, s string) []byte {
	dst = append(dst, prefix)
	dst = append(dst, s...)
	return append(dst, crlf...)
}

func appendHeader(dst []byte, prefix byte, n int) []byte {
	dst = append(dst, prefix)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

func appendBulk(dst []byte, prefix byte, p []byte) []byte {
	dst = appendHeader(dst, prefix, len(p))
	dst = append(dst, p...)
	return append(dst, crlf...)
}

// encodedSizeHint is a cheap lower bound used to presize Encode's output.
func encodedSizeHint(f Frame) int {
	switch v := f.(type) {
	case SimpleString:
		return len(v) + 3
	case SimpleError:
		return len(v) + 3
	case BulkString:
		return len(v) + 16
	case BulkError:
		return len(v) + 16
	case Array:
		return 16 + 8*len(v)
	}
	return 24
}

package resp

import (
	"strconv"
	"strings"
)

// String renders f for logs and debugging in a compact, redis-cli like
// form. It is not a wire format.
func String(f Frame) string {
	var sb strings.Builder
	writeString(&sb, f)
	return sb.String()
}

func writeString(sb *strings.Builder, f Frame) {
	switch v := f.(type) {
	case SimpleString:
		sb.WriteString(string(v))
	case SimpleError:
		sb.WriteString("(error) ")
		sb.WriteString(string(v))
	case Integer:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case BulkString:
		sb.WriteString(strconv.Quote(string(v)))
	case BulkError:
		sb.WriteString("(error) ")
		sb.WriteString(strconv.Quote(string(v)))
	case Boolean:
		if v {
			sb.WriteString("(true)")
		} else {
			sb.WriteString("(false)")
		}
	case Double:
		sb.WriteString("(double) ")
		sb.WriteString(v.String())
	case Array:
		writeList(sb, "[", "]", v)
	case *Map:
		sb.WriteString("{")
		first := true
		v.Ascend(func(key string, value Frame) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(key)
			sb.WriteString(": ")
			writeString(sb, value)
			return true
		})
		sb.WriteString("}")
	case *Set:
		writeList(sb, "{", "}", v.Members())
	default:
		sb.WriteString("(nil)")
	}
}

func writeList(sb *strings.Builder, open, closing string, frames []Frame) {
	sb.WriteString(open)
	for i, f := range frames {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeString(sb, f)
	}
	sb.WriteString(closing)
}

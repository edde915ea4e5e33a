package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// TextFormatter renders replies the way redis-cli does: quoted bulk
// strings, typed scalars such as "(integer) 1", and numbered aggregates
// with nested items indented under their parent.
type TextFormatter struct{}

// Format writes the reply followed by a newline.
func (f *TextFormatter) Format(w io.Writer, reply resp.Frame) error {
	_, err := io.WriteString(w, Text(reply)+"\n")
	return err
}

// Text renders a reply without the trailing newline.
func Text(f resp.Frame) string {
	var sb strings.Builder
	writeText(&sb, f, 0)
	return sb.String()
}

func writeText(sb *strings.Builder, f resp.Frame, indent int) {
	switch v := f.(type) {
	case resp.Array:
		if len(v) == 0 {
			sb.WriteString("(empty array)")
			return
		}
		writeItems(sb, v, ")", indent)
	case *resp.Set:
		if v.Len() == 0 {
			sb.WriteString("(empty set)")
			return
		}
		writeItems(sb, v.Members(), "~", indent)
	case *resp.Map:
		if v.Len() == 0 {
			sb.WriteString("(empty hash)")
			return
		}
		width := len(strconv.Itoa(v.Len()))
		i := 0
		v.Ascend(func(key string, value resp.Frame) bool {
			if i > 0 {
				sb.WriteString("\n")
				sb.WriteString(strings.Repeat(" ", indent))
			}
			i++
			prefix := fmt.Sprintf("%*d# ", width, i)
			sb.WriteString(prefix)
			sb.WriteString(strconv.Quote(key))
			sb.WriteString(" => ")
			writeText(sb, value, indent+len(prefix))
			return true
		})
	default:
		sb.WriteString(scalarText(f))
	}
}

func writeItems(sb *strings.Builder, items []resp.Frame, sep string, indent int) {
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", indent))
		}
		prefix := fmt.Sprintf("%*d%s ", width, i+1, sep)
		sb.WriteString(prefix)
		writeText(sb, item, indent+len(prefix))
	}
}

func scalarText(f resp.Frame) string {
	switch v := f.(type) {
	case resp.SimpleString:
		return string(v)
	case resp.SimpleError:
		return "(error) " + string(v)
	case resp.BulkError:
		return "(error) " + string(v)
	case resp.Integer:
		return "(integer) " + strconv.FormatInt(int64(v), 10)
	case resp.BulkString:
		return strconv.Quote(string(v))
	case resp.Boolean:
		if v {
			return "(true)"
		}
		return "(false)"
	case resp.Double:
		return "(double) " + strings.TrimPrefix(v.String(), "+")
	default:
		return "(nil)"
	}
}

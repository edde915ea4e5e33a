package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/yndnr/respkv/pkg/resp"
)

// TableFormatter renders maps as FIELD/VALUE rows and arrays or sets as
// numbered rows. Anything else is printed as text.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats the reply as a table.
func (f *TableFormatter) Format(w io.Writer, reply resp.Frame) error {
	var header [2]string
	var rows [][2]string

	switch v := reply.(type) {
	case *resp.Map:
		header = [2]string{"FIELD", "VALUE"}
		v.Ascend(func(key string, value resp.Frame) bool {
			rows = append(rows, [2]string{key, cell(value)})
			return true
		})
	case resp.Array:
		header = [2]string{"#", "VALUE"}
		for i, item := range v {
			rows = append(rows, [2]string{strconv.Itoa(i + 1), cell(item)})
		}
	case *resp.Set:
		header = [2]string{"#", "MEMBER"}
		for i, m := range v.Members() {
			rows = append(rows, [2]string{strconv.Itoa(i + 1), cell(m)})
		}
	default:
		return (&TextFormatter{}).Format(w, reply)
	}

	if len(rows) == 0 {
		return (&TextFormatter{}).Format(w, reply)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		fmt.Fprintf(tw, "%s\t%s\n", header[0], header[1])
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

// cell renders one value on a single line. Bulk strings print unquoted.
func cell(f resp.Frame) string {
	switch v := f.(type) {
	case resp.BulkString:
		return string(v)
	case resp.SimpleString:
		return string(v)
	case resp.Array, *resp.Map, *resp.Set:
		return resp.String(v)
	default:
		return scalarText(f)
	}
}

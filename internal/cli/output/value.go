package output

import (
	"math"

	"github.com/yndnr/respkv/pkg/resp"
)

// ErrorValue is how error replies appear in structured output.
type ErrorValue struct {
	Error string `json:"error" yaml:"error"`
}

// ToValue converts a frame into plain Go values for the json and yaml
// encoders. Nulls become nil, maps become map[string]any and sets become
// slices in member order. Non-finite doubles keep their RESP text.
func ToValue(f resp.Frame) any {
	switch v := f.(type) {
	case resp.SimpleString:
		return string(v)
	case resp.SimpleError:
		return ErrorValue{Error: string(v)}
	case resp.BulkError:
		return ErrorValue{Error: string(v)}
	case resp.Integer:
		return int64(v)
	case resp.BulkString:
		return string(v)
	case resp.Boolean:
		return bool(v)
	case resp.Double:
		x := v.Float64()
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return v.String()
		}
		return x
	case resp.Array:
		return toValues(v)
	case *resp.Map:
		out := make(map[string]any, v.Len())
		v.Ascend(func(key string, value resp.Frame) bool {
			out[key] = ToValue(value)
			return true
		})
		return out
	case *resp.Set:
		return toValues(v.Members())
	default:
		return nil
	}
}

func toValues(frames []resp.Frame) []any {
	out := make([]any, len(frames))
	for i, f := range frames {
		out[i] = ToValue(f)
	}
	return out
}

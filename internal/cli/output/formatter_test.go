package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/yndnr/respkv/pkg/resp"
)

func testMap(t *testing.T, kv ...string) *resp.Map {
	t.Helper()
	m := resp.NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		if err := m.Insert(kv[i], resp.BulkString(kv[i+1])); err != nil {
			t.Fatalf("Insert(%q) error = %v", kv[i], err)
		}
	}
	return m
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "*output.TextFormatter"},
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{"unknown", "*output.TextFormatter"}, // default to text
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			var ok bool
			switch tt.want {
			case "*output.TextFormatter":
				_, ok = f.(*TextFormatter)
			case "*output.TableFormatter":
				_, ok = f.(*TableFormatter)
			case "*output.JSONFormatter":
				_, ok = f.(*JSONFormatter)
			case "*output.YAMLFormatter":
				_, ok = f.(*YAMLFormatter)
			}
			if !ok {
				t.Errorf("NewFormatter(%q) = %T, want %s", tt.format, f, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

// ============================================================================
// Text
// ============================================================================

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		frame resp.Frame
		want  string
	}{
		{"simple string", resp.SimpleString("OK"), "OK"},
		{"error", resp.SimpleError("ERR invalid command"), "(error) ERR invalid command"},
		{"bulk error", resp.BulkError("SYNTAX bad"), "(error) SYNTAX bad"},
		{"integer", resp.Integer(1), "(integer) 1"},
		{"negative integer", resp.Integer(-7), "(integer) -7"},
		{"bulk", resp.BulkString("world"), `"world"`},
		{"bulk with newline", resp.BulkString("a\nb"), `"a\nb"`},
		{"null bulk", resp.NullBulkString{}, "(nil)"},
		{"null", resp.Null{}, "(nil)"},
		{"null array", resp.NullArray{}, "(nil)"},
		{"nil frame", nil, "(nil)"},
		{"true", resp.Boolean(true), "(true)"},
		{"false", resp.Boolean(false), "(false)"},
		{"double", resp.MustDouble(1.5), "(double) 1.5"},
		{"negative double", resp.MustDouble(-2), "(double) -2"},
		{"empty array", resp.Array{}, "(empty array)"},
		{"empty set", resp.NewSet(), "(empty set)"},
		{"empty map", resp.NewMap(), "(empty hash)"},
		{
			"array",
			resp.Array{resp.BulkString("world"), resp.NullBulkString{}},
			"1) \"world\"\n2) (nil)",
		},
		{
			"nested array",
			resp.Array{resp.BulkString("a"), resp.Array{resp.BulkString("b"), resp.BulkString("c")}},
			"1) \"a\"\n2) 1) \"b\"\n   2) \"c\"",
		},
		{
			"set",
			resp.NewSet(resp.BulkString("b"), resp.BulkString("a")),
			"1~ \"a\"\n2~ \"b\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.frame); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_Map(t *testing.T) {
	m := testMap(t, "hello", "world", "foo", "bar")
	want := "1# \"foo\" => \"bar\"\n2# \"hello\" => \"world\""
	if got := Text(m); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestText_WideIndex(t *testing.T) {
	arr := make(resp.Array, 10)
	for i := range arr {
		arr[i] = resp.Integer(i)
	}
	lines := strings.Split(Text(arr), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != " 1) (integer) 0" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[9] != "10) (integer) 9" {
		t.Errorf("last line = %q", lines[9])
	}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, resp.SimpleString("PONG")); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "PONG\n" {
		t.Errorf("Format() = %q, want %q", buf.String(), "PONG\n")
	}
}

// ============================================================================
// Table
// ============================================================================

func TestTableFormatter_Map(t *testing.T) {
	var buf bytes.Buffer
	m := testMap(t, "hello", "world", "foo", "bar")
	if err := (&TableFormatter{}).Format(&buf, m); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "FIELD  VALUE\nfoo    bar\nhello  world\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	arr := resp.Array{resp.BulkString("x"), resp.NullBulkString{}}
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, arr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "1  x\n2  (nil)\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Scalar(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, resp.Integer(1)); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "(integer) 1\n" {
		t.Errorf("Format() = %q", buf.String())
	}
}

// ============================================================================
// Structured
// ============================================================================

func TestToValue(t *testing.T) {
	if v := ToValue(resp.NullBulkString{}); v != nil {
		t.Errorf("ToValue(null bulk) = %v, want nil", v)
	}
	if v := ToValue(resp.Integer(3)); v != int64(3) {
		t.Errorf("ToValue(integer) = %#v", v)
	}
	if v := ToValue(resp.SimpleError("ERR x")); v != (ErrorValue{Error: "ERR x"}) {
		t.Errorf("ToValue(error) = %#v", v)
	}
	if v := ToValue(resp.MustDouble(math.Inf(1))); v != "+inf" {
		t.Errorf("ToValue(+inf) = %#v", v)
	}
	arr, ok := ToValue(resp.Array{resp.BulkString("a"), resp.Boolean(true)}).([]any)
	if !ok || len(arr) != 2 || arr[0] != "a" || arr[1] != true {
		t.Errorf("ToValue(array) = %#v", arr)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	t.Run("map", func(t *testing.T) {
		var buf bytes.Buffer
		m := testMap(t, "hello", "world", "foo", "bar")
		if err := (&JSONFormatter{}).Format(&buf, m); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		want := "{\n  \"foo\": \"bar\",\n  \"hello\": \"world\"\n}\n"
		if buf.String() != want {
			t.Errorf("Format() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("null", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{}).Format(&buf, resp.Null{}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if buf.String() != "null\n" {
			t.Errorf("Format() = %q", buf.String())
		}
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&JSONFormatter{}).Format(&buf, resp.SimpleError("ERR boom")); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"error": "ERR boom"`) {
			t.Errorf("Format() = %q", buf.String())
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		var buf bytes.Buffer
		arr := resp.Array{resp.BulkString("world"), resp.Integer(2)}
		if err := (&YAMLFormatter{}).Format(&buf, arr); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		want := "- world\n- 2\n"
		if buf.String() != want {
			t.Errorf("Format() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("map", func(t *testing.T) {
		var buf bytes.Buffer
		m := testMap(t, "hello", "world", "foo", "bar")
		if err := (&YAMLFormatter{}).Format(&buf, m); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		want := "foo: bar\nhello: world\n"
		if buf.String() != want {
			t.Errorf("Format() = %q, want %q", buf.String(), want)
		}
	})
}

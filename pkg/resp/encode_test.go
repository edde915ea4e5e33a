package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Scalars
// ============================================================================

func TestEncode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"simple string", SimpleString("OK"), "+OK\r\n"},
		{"empty simple string", SimpleString(""), "+\r\n"},
		{"simple error", SimpleError("ERR boom"), "-ERR boom\r\n"},
		{"positive integer", Integer(123), ":+123\r\n"},
		{"zero integer", Integer(0), ":+0\r\n"},
		{"negative integer", Integer(-123), ":-123\r\n"},
		{"min integer", Integer(math.MinInt64), ":-9223372036854775808\r\n"},
		{"bulk string", BulkString("hello"), "$5\r\nhello\r\n"},
		{"empty bulk string", BulkString{}, "$0\r\n\r\n"},
		{"binary bulk string", BulkString("a\r\nb"), "$4\r\na\r\nb\r\n"},
		{"null bulk string", NullBulkString{}, "$-1\r\n"},
		{"bulk error", BulkError("SYNTAX bad"), "!10\r\nSYNTAX bad\r\n"},
		{"null", Null{}, "_\r\n"},
		{"nil frame", nil, "_\r\n"},
		{"true", Boolean(true), "#t\r\n"},
		{"false", Boolean(false), "#f\r\n"},
		{"double", MustDouble(1.5), ",+1.5\r\n"},
		{"negative double", MustDouble(-2), ",-2\r\n"},
		{"null array", NullArray{}, "*-1\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.frame)))
		})
	}
}

// ============================================================================
// Aggregates
// ============================================================================

func TestEncode_Array(t *testing.T) {
	f := Array{BulkString("get"), BulkString("hello")}
	assert.Equal(t, "*2\r\n$3\r\nget\r\n$5\r\nhello\r\n", string(Encode(f)))

	assert.Equal(t, "*0\r\n", string(Encode(Array{})))

	nested := Array{Integer(1), Array{SimpleString("a"), Null{}}}
	assert.Equal(t, "*2\r\n:+1\r\n*2\r\n+a\r\n_\r\n", string(Encode(nested)))
}

func TestEncode_MapSortsKeys(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Insert("b", Integer(1)))
	require.NoError(t, m.Insert("a", Integer(2)))

	assert.Equal(t, "%2\r\n+a\r\n:+2\r\n+b\r\n:+1\r\n", string(Encode(m)))
}

func TestEncode_MapReplace(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Insert("k", Integer(1)))
	require.NoError(t, m.Insert("k", Integer(2)))

	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, Integer(2), v)
}

func TestMap_InsertRejectsInvalidKeys(t *testing.T) {
	m := NewMap()
	assert.ErrorIs(t, m.Insert("a\r\nb", Null{}), ErrInvalid)
	assert.ErrorIs(t, m.Insert("\xff", Null{}), ErrInvalid)
	assert.Equal(t, 0, m.Len())
}

func TestEncode_SetIsOrderIndependent(t *testing.T) {
	a := NewSet(BulkString("x"), Integer(5), SimpleString("s"))
	b := NewSet(SimpleString("s"), BulkString("x"), Integer(5), Integer(5))

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, string(Encode(a)), string(Encode(b)))
	assert.Equal(t, "~3\r\n+s\r\n:+5\r\n$1\r\nx\r\n", string(Encode(a)))
}

func TestEncode_EmptyContainers(t *testing.T) {
	assert.Equal(t, "%0\r\n", string(Encode(NewMap())))
	assert.Equal(t, "%0\r\n", string(Encode(&Map{})))
	assert.Equal(t, "~0\r\n", string(Encode(NewSet())))
}

func TestAppendFrame_ReusesDst(t *testing.T) {
	dst := []byte("prefix:")
	dst = AppendFrame(dst, SimpleString("OK"))
	assert.Equal(t, "prefix:+OK\r\n", string(dst))
}

func TestNewSimpleString(t *testing.T) {
	s, err := NewSimpleString("PONG")
	require.NoError(t, err)
	assert.Equal(t, SimpleString("PONG"), s)

	_, err = NewSimpleString("a\nb")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NewSimpleError("bad\xfe")
	assert.ErrorIs(t, err, ErrInvalid)
}

package resp

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies a frame variant. Kinds are numbered in the order used by
// Compare when two frames differ in variant.
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindSimpleError
	KindInteger
	KindBulkString
	KindNullBulkString
	KindBulkError
	KindNull
	KindBoolean
	KindDouble
	KindArray
	KindNullArray
	KindMap
	KindSet
)

var kindNames = [...]string{
	KindSimpleString:   "simple-string",
	KindSimpleError:    "simple-error",
	KindInteger:        "integer",
	KindBulkString:     "bulk-string",
	KindNullBulkString: "null-bulk-string",
	KindBulkError:      "bulk-error",
	KindNull:           "null",
	KindBoolean:        "boolean",
	KindDouble:         "double",
	KindArray:          "array",
	KindNullArray:      "null-array",
	KindMap:            "map",
	KindSet:            "set",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Protocol selects the reply dialect a server speaks.
type Protocol int

const (
	RESP2 Protocol = 2
	RESP3 Protocol = 3
)

// Frame is one RESP value. The set of implementations is closed; switch on
// the concrete type to inspect a frame.
//
// A nil Frame is treated as Null by Encode and Compare.
type Frame interface {
	Kind() Kind
	frame()
}

// SimpleString is single-line text. Conversions from string bypass
// validation; use NewSimpleString for untrusted input.
type SimpleString string

// SimpleError is single-line error text, e.g. "ERR unknown command".
type SimpleError string

// Integer is a signed 64-bit integer.
type Integer int64

// BulkString is a binary-safe byte payload.
type BulkString []byte

// NullBulkString is the RESP2 null bulk reply ("$-1").
type NullBulkString struct{}

// BulkError is a binary-safe error payload.
type BulkError []byte

// Null is the RESP3 null ("_").
type Null struct{}

// Boolean is the RESP3 boolean ("#t" / "#f").
type Boolean bool

// Array is an ordered sequence of frames.
type Array []Frame

// NullArray is the RESP2 null multi-bulk reply ("*-1").
type NullArray struct{}

func (SimpleString) Kind() Kind   { return KindSimpleString }
func (SimpleError) Kind() Kind    { return KindSimpleError }
func (Integer) Kind() Kind        { return KindInteger }
func (BulkString) Kind() Kind     { return KindBulkString }
func (NullBulkString) Kind() Kind { return KindNullBulkString }
func (BulkError) Kind() Kind      { return KindBulkError }
func (Null) Kind() Kind           { return KindNull }
func (Boolean) Kind() Kind        { return KindBoolean }
func (Double) Kind() Kind         { return KindDouble }
func (Array) Kind() Kind          { return KindArray }
func (NullArray) Kind() Kind      { return KindNullArray }
func (*Map) Kind() Kind           { return KindMap }
func (*Set) Kind() Kind           { return KindSet }

func (SimpleString) frame()   {}
func (SimpleError) frame()    {}
func (Integer) frame()        {}
func (BulkString) frame()     {}
func (NullBulkString) frame() {}
func (BulkError) frame()      {}
func (Null) frame()           {}
func (Boolean) frame()        {}
func (Double) frame()         {}
func (Array) frame()          {}
func (NullArray) frame()      {}
func (*Map) frame()           {}
func (*Set) frame()           {}

// NewSimpleString validates s as single-line UTF-8 text.
func NewSimpleString(s string) (SimpleString, error) {
	if err := validLine(s); err != nil {
		return "", err
	}
	return SimpleString(s), nil
}

// NewSimpleError validates s as single-line UTF-8 text.
func NewSimpleError(s string) (SimpleError, error) {
	if err := validLine(s); err != nil {
		return "", err
	}
	return SimpleError(s), nil
}

// ValidLine reports whether s can be carried by a SimpleString, a
// SimpleError or a Map key.
func ValidLine(s string) bool {
	return validLine(s) == nil
}

func validLine(s string) error {
	if !utf8.ValidString(s) {
		return invalidf("text is not valid utf-8")
	}
	if strings.ContainsAny(s, "\r\n") {
		return invalidf("text contains CR or LF")
	}
	return nil
}

// KindOf returns f.Kind(), mapping a nil frame to KindNull.
func KindOf(f Frame) Kind {
	if f == nil {
		return KindNull
	}
	return f.Kind()
}

// IsNull reports whether f is one of the null variants.
func IsNull(f Frame) bool {
	switch KindOf(f) {
	case KindNull, KindNullBulkString, KindNullArray:
		return true
	}
	return false
}

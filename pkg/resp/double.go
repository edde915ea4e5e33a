package resp

import (
	"math"
	"strconv"
	"strings"
)

// sciThreshold is the magnitude above which doubles use exponent notation.
const sciThreshold = 1e8

// Double is a RESP3 double. It keeps the canonical text alongside the value
// so that equality, ordering and hashing agree with the wire form.
//
// The zero value is +0.
type Double struct {
	text  string
	value float64
}

// NewDouble returns the Double for v. NaN is rejected.
func NewDouble(v float64) (Double, error) {
	if math.IsNaN(v) {
		return Double{}, invalidf("NaN is not a valid double")
	}
	return Double{text: formatDouble(v), value: v}, nil
}

// MustDouble is like NewDouble but panics on NaN.
func MustDouble(v float64) Double {
	d, err := NewDouble(v)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDouble parses decimal, exponent or inf text into a Double.
func ParseDouble(s string) (Double, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports overflow as ±Inf with ErrRange; anything else
		// is malformed.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return Double{}, invalidf("invalid double %q", s)
		}
	}
	return NewDouble(v)
}

// Float64 returns the numeric value.
func (d Double) Float64() float64 { return d.value }

// String returns the canonical text, e.g. "+1.5", "-0", "+1.23e9", "+inf".
func (d Double) String() string {
	if d.text == "" {
		return formatDouble(d.value)
	}
	return d.text
}

// formatDouble always writes a sign. Magnitudes above 1e8 use a shortest
// mantissa and an unpadded exponent; the rest use shortest fixed notation.
func formatDouble(v float64) string {
	sign := "+"
	if math.Signbit(v) {
		sign = "-"
	}
	abs := math.Abs(v)
	switch {
	case math.IsInf(abs, 1):
		return sign + "inf"
	case abs > sciThreshold:
		s := strconv.FormatFloat(abs, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		n, _ := strconv.Atoi(exp)
		return sign + mant + "e" + strconv.Itoa(n)
	default:
		return sign + strconv.FormatFloat(abs, 'f', -1, 64)
	}
}

package resp

import (
	"fmt"
	"math"
)

// ExpectedLength reports how many bytes the frame at the start of b
// occupies without consuming anything. It returns ErrIncomplete when b is a
// strict prefix of a frame, and a protocol error as soon as the bytes seen
// so far cannot begin any valid frame. Aggregates nested deeper than
// MaxNestingDepth fail with ErrLimitExceeded.
func ExpectedLength(b []byte) (int, error) {
	var s sizer
	return s.advance(b)
}

// sizer measures one frame incrementally. It remembers how much of the
// frame it has already verified, so feeding it a growing buffer walks each
// element once. The zero value starts at a frame boundary.
type sizer struct {
	off     int
	scanned int     // bytes of the current header line searched without a CRLF
	pending []int64 // children still expected per open aggregate, innermost last
}

func (s *sizer) reset() {
	s.off = 0
	s.scanned = 0
	s.pending = s.pending[:0]
}

// advance continues measuring the frame at the start of b. Between resets,
// every b must extend the bytes passed to the previous call. On
// ErrIncomplete the progress made so far is kept.
func (s *sizer) advance(b []byte) (int, error) {
	for {
		if s.off >= len(b) {
			return 0, ErrIncomplete
		}
		rest := b[s.off:]
		if !isSentinel(rest[0]) {
			return 0, invalidType(rest[0])
		}
		end := findCRLF(rest, 1, max(1, s.scanned-1))
		if end < 0 {
			s.scanned = len(rest)
			return 0, ErrIncomplete
		}

		var (
			n   int
			err error
		)
		switch rest[0] {
		case prefixBulkString, prefixBulkError:
			n, err = bulkLength(rest, end)
		case prefixArray, prefixMap, prefixSet:
			var children int64
			n, children, err = aggregateHeader(rest, end)
			if err == nil && children > 0 {
				if len(s.pending) >= MaxNestingDepth {
					return 0, fmt.Errorf("%w: nesting deeper than %d", ErrLimitExceeded, MaxNestingDepth)
				}
				s.off += n
				s.scanned = 0
				s.pending = append(s.pending, children)
				continue
			}
		default:
			n = end + 2
		}
		if err != nil {
			return 0, err
		}
		s.off += n
		s.scanned = 0

		// One element is complete; close every aggregate it finishes.
		for {
			top := len(s.pending) - 1
			if top < 0 {
				return s.off, nil
			}
			s.pending[top]--
			if s.pending[top] > 0 {
				break
			}
			s.pending = s.pending[:top]
		}
	}
}

func isSentinel(c byte) bool {
	switch c {
	case prefixSimpleString, prefixSimpleError, prefixInteger,
		prefixBulkString, prefixBulkError, prefixNull, prefixBoolean,
		prefixDouble, prefixArray, prefixMap, prefixSet:
		return true
	}
	return false
}

// bulkLength sizes "$<n>\r\n<payload>\r\n" given the index of the header's
// CRLF. The payload is binary and may itself contain CRLF, so only the
// declared length decides where it ends.
func bulkLength(b []byte, end int) (int, error) {
	n, err := parseHeader(b[1:end])
	if err != nil {
		return 0, err
	}
	header := end + 2
	if n == -1 && b[0] == prefixBulkString {
		return header, nil
	}
	if n < 0 {
		return 0, invalidf("negative length %d", n)
	}
	if n > MaxBulkLen {
		return 0, fmt.Errorf("%w: bulk length %d > %d", ErrLimitExceeded, n, MaxBulkLen)
	}
	need := header + int(n) + 2
	switch {
	case len(b) >= need:
		if b[need-2] != '\r' || b[need-1] != '\n' {
			return 0, fmt.Errorf("%w: payload is not %d bytes", ErrInvalidFrameLength, n)
		}
		return need, nil
	case len(b) == need-1 && len(b) >= header+2 && b[len(b)-2] == '\r' && b[len(b)-1] == '\n':
		// A strict prefix of length need-1 always ends in the terminator's
		// '\r', so a trailing CRLF here means the payload is short.
		return 0, fmt.Errorf("%w: payload is shorter than %d bytes", ErrInvalidFrameLength, n)
	default:
		return 0, ErrIncomplete
	}
}

// aggregateHeader sizes the header of an array, map or set and returns how
// many child frames follow it. A null array has no children.
func aggregateHeader(b []byte, end int) (int, int64, error) {
	n, err := parseHeader(b[1:end])
	if err != nil {
		return 0, 0, err
	}
	header := end + 2
	if n == -1 && b[0] == prefixArray {
		return header, 0, nil
	}
	if n < 0 {
		return 0, 0, invalidf("negative count %d", n)
	}
	if b[0] == prefixMap {
		if n > math.MaxInt64/2 {
			n = math.MaxInt64
		} else {
			n *= 2
		}
	}
	return header, n, nil
}

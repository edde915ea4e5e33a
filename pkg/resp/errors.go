package resp

import (
	"errors"
	"fmt"
)

// Codec errors. Every error returned by this package wraps exactly one of
// these sentinels; match with errors.Is.
var (
	// ErrIncomplete means the buffer holds a strict prefix of a frame.
	// It is a signal to read more bytes, never a protocol violation.
	ErrIncomplete = errors.New("resp: frame is incomplete")

	// ErrInvalidFrameType means the first byte is not a known sentinel.
	ErrInvalidFrameType = errors.New("resp: invalid frame type")

	// ErrInvalidFrameLength means a bulk payload does not match its
	// declared length.
	ErrInvalidFrameLength = errors.New("resp: invalid frame length")

	// ErrInvalid covers malformed headers, numbers, booleans and nulls.
	ErrInvalid = errors.New("resp: invalid frame")

	// ErrLimitExceeded means a declared length is above MaxBulkLen or
	// aggregates nest deeper than MaxNestingDepth.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

const (
	// MaxBulkLen caps the declared length of a single bulk payload (512 MiB,
	// the same ceiling Redis applies by default).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxNestingDepth caps how many non-empty aggregates may be open at
	// once. Decoding recurses per level.
	MaxNestingDepth = 512
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func invalidType(b byte) error {
	return fmt.Errorf("%w: unexpected byte %q", ErrInvalidFrameType, b)
}

package resp

import (
	"bytes"
	"strconv"
	"strings"
)

var crlf = []byte{'\r', '\n'}

// findCRLF returns the index of the '\r' of the n-th CRLF at or after
// start, or -1 if b holds fewer than n of them.
func findCRLF(b []byte, n, start int) int {
	if n <= 0 || start < 0 || start >= len(b) {
		return -1
	}
	pos := start
	for count := 0; ; {
		i := bytes.Index(b[pos:], crlf)
		if i < 0 {
			return -1
		}
		count++
		if count == n {
			return pos + i
		}
		pos += i + 2
	}
}

// checkPrefix validates that b starts with prefix and is long enough to
// hold at least the prefix and a terminator.
func checkPrefix(b []byte, prefix string) error {
	if len(b) < len(prefix)+2 {
		return ErrIncomplete
	}
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return invalidType(b[0])
	}
	return nil
}

// readLine consumes "<prefix><payload>\r\n" and returns the payload as
// UTF-8, replacing ill-formed sequences with U+FFFD.
func readLine(buf *Buffer, prefix string) (string, error) {
	b := buf.Bytes()
	if err := checkPrefix(b, prefix); err != nil {
		return "", err
	}
	end := findCRLF(b, 1, len(prefix))
	if end < 0 {
		return "", ErrIncomplete
	}
	line := strings.ToValidUTF8(string(b[len(prefix):end]), "\uFFFD")
	buf.Advance(end + 2)
	return line, nil
}

// readLengthHeader consumes a length or count header. -1 is accepted so
// callers can detect null sentinels.
func readLengthHeader(buf *Buffer, prefix string) (int64, error) {
	line, err := readLine(buf, prefix)
	if err != nil {
		return 0, err
	}
	return parseHeader(line)
}

// expectExact consumes one line and requires its payload to be literal.
func expectExact(buf *Buffer, prefix, literal, label string) error {
	b := buf.Bytes()
	if err := checkPrefix(b, prefix); err != nil {
		return err
	}
	end := findCRLF(b, 1, len(prefix))
	if end < 0 {
		return ErrIncomplete
	}
	if string(b[len(prefix):end]) != literal {
		return invalidf("invalid %s %q", label, b[:end])
	}
	buf.Advance(end + 2)
	return nil
}

func parseHeader[T ~string | ~[]byte](p T) (int64, error) {
	n, err := strconv.ParseInt(string(p), 10, 64)
	if err != nil {
		return 0, invalidf("invalid length header %q", string(p))
	}
	return n, nil
}

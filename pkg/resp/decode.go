package resp

import "strconv"

// Decode removes one complete frame from the front of buf and returns it.
// When buf holds only part of a frame it returns ErrIncomplete and leaves
// buf untouched. On any other error the buffer contents are unspecified
// and the stream should be abandoned.
func Decode(buf *Buffer) (Frame, error) {
	if _, err := ExpectedLength(buf.Bytes()); err != nil {
		return nil, err
	}
	return decodeFrame(buf)
}

// DecodeBytes decodes the frame at the start of b and reports how many
// bytes it occupied. b is not retained.
func DecodeBytes(b []byte) (Frame, int, error) {
	n, err := ExpectedLength(b)
	if err != nil {
		return nil, 0, err
	}
	f, err := decodeFrame(&Buffer{buf: b[:n]})
	if err != nil {
		return nil, 0, err
	}
	return f, n, nil
}

// decodeFrame dispatches on the sentinel. Callers have already established
// via ExpectedLength that the frame is complete.
func decodeFrame(buf *Buffer) (Frame, error) {
	b := buf.Bytes()
	if len(b) == 0 {
		return nil, ErrIncomplete
	}
	switch b[0] {
	case prefixSimpleString:
		s, err := readLine(buf, "+")
		return SimpleString(s), err
	case prefixSimpleError:
		s, err := readLine(buf, "-")
		return SimpleError(s), err
	case prefixInteger:
		return decodeInteger(buf)
	case prefixBulkString:
		return decodeBulk(buf, "$")
	case prefixBulkError:
		return decodeBulk(buf, "!")
	case prefixNull:
		if err := expectExact(buf, "_", "", "null"); err != nil {
			return nil, err
		}
		return Null{}, nil
	case prefixBoolean:
		return decodeBoolean(buf)
	case prefixDouble:
		return decodeDouble(buf)
	case prefixArray:
		return decodeArray(buf)
	case prefixMap:
		return decodeMap(buf)
	case prefixSet:
		return decodeSet(buf)
	default:
		return nil, invalidType(b[0])
	}
}

func decodeInteger(buf *Buffer) (Frame, error) {
	s, err := readLine(buf, ":")
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, invalidf("invalid integer %q", s)
	}
	return Integer(n), nil
}

func decodeBulk(buf *Buffer, prefix string) (Frame, error) {
	n, err := readLengthHeader(buf, prefix)
	if err != nil {
		return nil, err
	}
	if n == -1 && prefix == "$" {
		return NullBulkString{}, nil
	}
	if n < 0 {
		return nil, invalidf("negative length %d", n)
	}
	b := buf.Bytes()
	if int64(len(b)) < n+2 {
		return nil, ErrIncomplete
	}
	if b[n] != '\r' || b[n+1] != '\n' {
		return nil, ErrInvalidFrameLength
	}
	payload := make([]byte, n)
	copy(payload, b[:n])
	buf.Advance(int(n) + 2)
	if prefix == "!" {
		return BulkError(payload), nil
	}
	return BulkString(payload), nil
}

func decodeBoolean(buf *Buffer) (Frame, error) {
	s, err := readLine(buf, "#")
	if err != nil {
		return nil, err
	}
	switch s {
	case "t":
		return Boolean(true), nil
	case "f":
		return Boolean(false), nil
	default:
		return nil, invalidf("invalid boolean %q", s)
	}
}

func decodeDouble(buf *Buffer) (Frame, error) {
	s, err := readLine(buf, ",")
	if err != nil {
		return nil, err
	}
	d, err := ParseDouble(s)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeArray(buf *Buffer) (Frame, error) {
	n, err := readLengthHeader(buf, "*")
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return NullArray{}, nil
	}
	if n < 0 {
		return nil, invalidf("negative count %d", n)
	}
	arr := make(Array, 0, capHint(n))
	for i := int64(0); i < n; i++ {
		f, err := decodeFrame(buf)
		if err != nil {
			return nil, err
		}
		arr = append(arr, f)
	}
	return arr, nil
}

func decodeMap(buf *Buffer) (Frame, error) {
	n, err := readLengthHeader(buf, "%")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, invalidf("negative count %d", n)
	}
	m := NewMap()
	for i := int64(0); i < n; i++ {
		k, err := decodeFrame(buf)
		if err != nil {
			return nil, err
		}
		key, ok := k.(SimpleString)
		if !ok {
			return nil, invalidf("map key must be a simple string, got %s", KindOf(k))
		}
		v, err := decodeFrame(buf)
		if err != nil {
			return nil, err
		}
		m.insert(string(key), v)
	}
	return m, nil
}

func decodeSet(buf *Buffer) (Frame, error) {
	n, err := readLengthHeader(buf, "~")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, invalidf("negative count %d", n)
	}
	s := NewSet()
	for i := int64(0); i < n; i++ {
		f, err := decodeFrame(buf)
		if err != nil {
			return nil, err
		}
		s.Insert(f)
	}
	return s, nil
}

// capHint bounds preallocation so a hostile count cannot force a large
// allocation before any element has been read.
func capHint(n int64) int {
	if n > 1024 {
		return 1024
	}
	return int(n)
}

package resp

import "io"

// minRead is the free space Fill guarantees before each read.
const minRead = 4096

// Buffer is a growable byte queue that is appended at the tail and
// consumed from the front. The zero value is an empty buffer ready to use.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns a Buffer whose initial contents are b. The buffer takes
// ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Bytes returns the unconsumed bytes. The slice is only valid until the
// next call that modifies the buffer.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Advance consumes n leading bytes. n larger than Len empties the buffer.
func (b *Buffer) Advance(n int) {
	if n < 0 {
		return
	}
	b.off += n
	if b.off >= len(b.buf) {
		b.Reset()
	}
}

// Reset discards all contents but keeps the allocated storage.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// Write appends p to the tail. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.compact(len(p))
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the tail.
func (b *Buffer) WriteString(s string) (int, error) {
	b.compact(len(s))
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// Fill performs a single Read from r into the tail of the buffer and
// returns the number of bytes added. Unlike io.ReaderFrom it does not loop
// until EOF.
func (b *Buffer) Fill(r io.Reader) (int, error) {
	b.compact(minRead)
	if cap(b.buf)-len(b.buf) < minRead {
		grown := make([]byte, len(b.buf), 2*cap(b.buf)+minRead)
		copy(grown, b.buf)
		b.buf = grown
	}
	n, err := r.Read(b.buf[len(b.buf):cap(b.buf)])
	if n < 0 {
		n = 0
	}
	b.buf = b.buf[:len(b.buf)+n]
	return n, err
}

// compact moves unconsumed bytes to the front when the tail lacks room for
// need more bytes and the consumed prefix would make room.
func (b *Buffer) compact(need int) {
	if b.off == 0 || cap(b.buf)-len(b.buf) >= need {
		return
	}
	n := copy(b.buf, b.buf[b.off:])
	b.buf = b.buf[:n]
	b.off = 0
}

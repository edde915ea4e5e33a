package resp

import (
	"errors"
	"io"
)

// Framer reads and writes whole frames over a byte stream. It is not safe
// for concurrent use; callers serialize reads and writes per connection.
type Framer struct {
	rw   io.ReadWriter
	in   Buffer
	size sizer
	wbuf []byte
}

// NewFramer wraps rw.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{rw: rw}
}

// ReadFrame returns the next frame, reading from the stream as needed.
// It returns io.EOF when the stream ends on a frame boundary and
// io.ErrUnexpectedEOF when it ends inside a frame. Codec errors are
// returned as is; the stream is unusable afterwards. A frame that arrives
// in many reads is sized in one pass, not rescanned after every read.
func (f *Framer) ReadFrame() (Frame, error) {
	for {
		_, err := f.size.advance(f.in.Bytes())
		if err == nil {
			f.size.reset()
			return decodeFrame(&f.in)
		}
		if !errors.Is(err, ErrIncomplete) {
			f.size.reset()
			return nil, err
		}
		n, rerr := f.in.Fill(f.rw)
		if n > 0 {
			continue
		}
		switch {
		case rerr == nil:
			// Zero-byte read without error; try again.
		case errors.Is(rerr, io.EOF):
			if f.in.Len() == 0 {
				return nil, io.EOF
			}
			return nil, io.ErrUnexpectedEOF
		default:
			return nil, rerr
		}
	}
}

// Buffered returns the number of received bytes not yet decoded. A
// non-zero value between frames means the peer has started the next one.
func (f *Framer) Buffered() int { return f.in.Len() }

// WriteFrame encodes fr and writes it with a single Write call.
func (f *Framer) WriteFrame(fr Frame) error {
	f.wbuf = AppendFrame(f.wbuf[:0], fr)
	_, err := f.rw.Write(f.wbuf)
	return err
}

// WriteFrames encodes all frames into one buffer and writes it at once,
// which keeps pipelined replies in a single segment.
func (f *Framer) WriteFrames(frames ...Frame) error {
	f.wbuf = f.wbuf[:0]
	for _, fr := range frames {
		f.wbuf = AppendFrame(f.wbuf, fr)
	}
	_, err := f.rw.Write(f.wbuf)
	return err
}

// Package resp implements a streaming codec for the Redis serialization
// protocol (RESP2 and the RESP3 scalar and aggregate types).
//
// The package is organised in three layers:
//
//   - buffer.go, scanner.go: a front-consumable byte queue and the line
//     helpers every decoder builds on
//   - encode.go, decode.go, length.go: per-variant encoders and decoders
//     plus ExpectedLength, a read-only oracle for the size of the next frame
//   - frame.go, container.go, double.go, compare.go: the Frame model with
//     value equality and a total order
//
// Decoding is two-phase. Decode first asks ExpectedLength whether a whole
// frame is buffered and returns ErrIncomplete without touching the buffer
// if not; only then does it consume bytes. Any strict prefix of a valid
// frame therefore yields ErrIncomplete and never a parse error.
//
// Framer drives the codec over an io.ReadWriter:
//
//	fr := resp.NewFramer(conn)
//	frame, err := fr.ReadFrame()
//	...
//	err = fr.WriteFrame(resp.SimpleString("OK"))
package resp

// Package redisserver serves the RESP protocol over TCP.
//
// Each accepted connection gets its own goroutine that reads frames with a
// resp.Framer, parses them into commands and writes one reply per request,
// in order. PING and QUIT are answered at the connection level; everything
// else goes through command.Parse and command.Executor.
//
// A codec error is terminal for the connection: the server sends a final
// "-ERR protocol error" reply and closes. Command errors are reported as
// "-ERR ..." and the connection stays open.
package redisserver

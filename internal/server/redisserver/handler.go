package redisserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/resp"
)

var (
	replyPong        = resp.SimpleString("PONG")
	replyOK          = resp.SimpleString("OK")
	replyRateLimited = resp.SimpleError("ERR rate limit exceeded")
	replyLimit       = resp.SimpleError("ERR protocol limit exceeded")
)

// frameValue renders a frame for debug logs only when the record is
// actually emitted.
type frameValue struct{ f resp.Frame }

func (v frameValue) LogValue() slog.Value {
	return slog.StringValue(resp.String(v.f))
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	ctx = logger.WithConnID(logger.WithLogger(ctx, s.log), c.ID())
	log := logger.L(ctx)
	log.Info("client connected", "remote", c.RemoteAddr().String())
	defer log.Info("client disconnected")

	for {
		req, err := c.framer.ReadFrame()
		if err != nil {
			s.handleReadError(log, c, err)
			return
		}
		log.Debug("request", "frame", frameValue{req})

		reply, quit := s.handle(c, req)
		log.Debug("reply", "frame", frameValue{reply})
		if err := c.framer.WriteFrame(reply); err != nil {
			log.Debug("write failed", "error", err)
			return
		}
		if quit {
			return
		}
	}
}

// handle produces the reply for one request. The boolean asks the caller
// to close the connection after writing it.
func (s *Server) handle(c *Conn, req resp.Frame) (resp.Frame, bool) {
	if name, args, ok := splitRequest(req); ok {
		switch {
		case bytes.EqualFold(name, []byte("PING")):
			return ping(args), false
		case bytes.EqualFold(name, []byte("QUIT")):
			return replyOK, true
		}
	}

	if s.limiter != nil && !s.limiter.allow(clientIP(c.RemoteAddr())) {
		s.metrics.IncRateLimited()
		return replyRateLimited, false
	}

	start := time.Now()
	cmd, err := command.Parse(req)
	if err != nil {
		s.metrics.ObserveCommand("invalid", "error", time.Since(start))
		return command.ErrorReply(err), false
	}
	reply := s.exec.Execute(cmd)
	s.metrics.ObserveCommand(cmd.Name(), "ok", time.Since(start))
	return reply, false
}

func splitRequest(req resp.Frame) (resp.BulkString, []resp.Frame, bool) {
	arr, ok := req.(resp.Array)
	if !ok || len(arr) == 0 {
		return nil, nil, false
	}
	name, ok := arr[0].(resp.BulkString)
	if !ok {
		return nil, nil, false
	}
	return name, arr[1:], true
}

func ping(args []resp.Frame) resp.Frame {
	switch len(args) {
	case 0:
		return replyPong
	case 1:
		return args[0]
	default:
		return command.ErrorReply(fmt.Errorf("%w: wrong number of arguments for 'PING' command", command.ErrInvalidArguments))
	}
}

func (s *Server) handleReadError(log logger.Logger, c *Conn, err error) {
	var ne net.Error
	switch {
	case errors.Is(err, io.EOF):
		return
	case c.Closed() || errors.Is(err, net.ErrClosed):
		return
	case errors.As(err, &ne) && ne.Timeout():
		log.Debug("connection timed out")
		return
	case errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection closed inside a frame")
		return
	case errors.Is(err, resp.ErrLimitExceeded):
		log.Warn("protocol limit exceeded", "error", err)
		s.metrics.RecordProtocolError("limit_exceeded")
		_ = c.framer.WriteFrame(replyLimit)
		return
	}

	reason := protocolErrorReason(err)
	if reason == "" {
		log.Debug("connection read error", "error", err)
		return
	}
	log.Warn("protocol error", "error", err)
	s.metrics.RecordProtocolError(reason)
	_ = c.framer.WriteFrame(command.ErrorReply(fmt.Errorf("protocol error: %w", err)))
}

func protocolErrorReason(err error) string {
	switch {
	case errors.Is(err, resp.ErrInvalidFrameType):
		return "invalid_type"
	case errors.Is(err, resp.ErrInvalidFrameLength):
		return "invalid_length"
	case errors.Is(err, resp.ErrInvalid):
		return "invalid"
	default:
		return ""
	}
}

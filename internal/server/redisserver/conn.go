package redisserver

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/pkg/resp"
)

// Conn is a single client connection. It implements io.ReadWriter for its
// Framer and applies deadlines on every call: the idle timeout while no
// part of the next request has arrived, the read timeout once it has.
type Conn struct {
	id      string
	netConn net.Conn
	framer  *resp.Framer

	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration

	closed atomic.Bool
}

func newConn(nc net.Conn, cfg *Config) *Conn {
	c := &Conn{
		id:           ulid.Make().String(),
		netConn:      nc,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		idleTimeout:  cfg.IdleTimeout,
	}
	c.framer = resp.NewFramer(c)
	return c
}

// ID returns the connection's ULID.
func (c *Conn) ID() string { return c.id }

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// Read reads from the socket under the idle or read deadline.
func (c *Conn) Read(p []byte) (int, error) {
	timeout := c.readTimeout
	if c.framer.Buffered() == 0 {
		timeout = c.idleTimeout
	}
	if err := setDeadline(c.netConn.SetReadDeadline, timeout); err != nil {
		return 0, err
	}
	return c.netConn.Read(p)
}

// Write writes to the socket under the write deadline.
func (c *Conn) Write(p []byte) (int, error) {
	if err := setDeadline(c.netConn.SetWriteDeadline, c.writeTimeout); err != nil {
		return 0, err
	}
	return c.netConn.Write(p)
}

// Close closes the socket. Subsequent calls are no-ops.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// Closed reports whether Close has been called.
func (c *Conn) Closed() bool { return c.closed.Load() }

func setDeadline(set func(time.Time) error, d time.Duration) error {
	if d <= 0 {
		return set(time.Time{})
	}
	return set(time.Now().Add(d))
}

// clientIP extracts the host part of addr for rate limiting.
func clientIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

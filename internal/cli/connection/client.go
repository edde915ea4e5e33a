package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// DefaultPort is used when an address has no port.
const DefaultPort = "6379"

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client sends commands to a respkv (or any RESP) server. It is not safe for
// concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	framer  *resp.Framer
}

// NormalizeAddr adds DefaultPort to addresses without one. Paths
// containing a slash are Unix socket addresses and are left as they are.
func NormalizeAddr(addr string) string {
	if addr == "" {
		return net.JoinHostPort("localhost", DefaultPort)
	}
	if isUnixPath(addr) {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return net.JoinHostPort(addr, DefaultPort)
	}
	return addr
}

// Dial connects to addr. A zero timeout uses DefaultTimeout.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	addr = NormalizeAddr(addr)

	network := "tcp"
	if isUnixPath(addr) {
		network = "unix"
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		framer:  resp.NewFramer(conn),
	}, nil
}

func isUnixPath(addr string) bool {
	return strings.Contains(addr, "/")
}

// Addr returns the server address.
func (c *Client) Addr() string { return c.addr }

// Do sends args as an array of bulk strings and returns the reply. A
// server error reply is returned as a frame, not as an error.
func (c *Client) Do(args ...string) (resp.Frame, error) {
	req := make(resp.Array, len(args))
	for i, a := range args {
		req[i] = resp.BulkString(a)
	}
	return c.DoFrame(req)
}

// DoFrame sends an arbitrary request frame and returns the reply. Any
// transport error closes the client: part of a reply may already be
// buffered, so the stream can no longer be matched to requests.
func (c *Client) DoFrame(req resp.Frame) (resp.Frame, error) {
	if c.conn == nil {
		return nil, ErrClosed
	}
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.framer.WriteFrame(req); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("send: %w", err)
	}
	reply, err := c.framer.ReadFrame()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("receive: %w", err)
	}
	return reply, nil
}

// Ping checks the connection.
func (c *Client) Ping() error {
	reply, err := c.Do("PING")
	if err != nil {
		return err
	}
	if !resp.Equal(reply, resp.SimpleString("PONG")) {
		return fmt.Errorf("unexpected PING reply %s", resp.String(reply))
	}
	return nil
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

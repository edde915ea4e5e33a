package connection

import (
	"context"
	"errors"
	"time"
)

// ErrNotConnected is returned when no server connection is open.
var ErrNotConnected = errors.New("not connected")

// Manager holds the CLI's current server connection.
type Manager struct {
	timeout time.Duration
	current *Client
}

// NewManager creates a connection manager. A zero timeout uses
// DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	return &Manager{timeout: timeout}
}

// Connect dials addr, verifies it with PING and makes it current. The
// previous connection is closed only once the new one works.
func (m *Manager) Connect(ctx context.Context, addr string) error {
	c, err := Dial(ctx, addr, m.timeout)
	if err != nil {
		return err
	}
	if err := c.Ping(); err != nil {
		_ = c.Close()
		return err
	}
	m.Disconnect()
	m.current = c
	return nil
}

// Disconnect closes the current connection, if any.
func (m *Manager) Disconnect() {
	if m.current != nil {
		_ = m.current.Close()
		m.current = nil
	}
}

// Current returns the current client or ErrNotConnected.
func (m *Manager) Current() (*Client, error) {
	if m.current == nil {
		return nil, ErrNotConnected
	}
	return m.current, nil
}

// IsConnected returns true if connected to a server.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}

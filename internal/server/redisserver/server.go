package redisserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// UnixSocket, when set, also serves on a Unix domain socket at this
	// path. A stale socket file left by a previous run is replaced.
	UnixSocket string
	// UnixSocketPerm is the socket file mode; zero means 0700.
	UnixSocketPerm os.FileMode
	// Protocol selects the reply dialect for HGETALL.
	Protocol resp.Protocol
	// ReadTimeout bounds receiving the rest of a frame once it has started.
	// Helps against slowloris clients. Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply. Zero disables it.
	WriteTimeout time.Duration
	// IdleTimeout bounds the wait between requests. Zero disables it.
	IdleTimeout time.Duration
	// RateLimit is the number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64
	// Burst is the limiter bucket size; zero derives it from RateLimit.
	Burst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "0.0.0.0:6379",
		Protocol:     resp.RESP2,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
	}
}

// Server is the RESP protocol server.
type Server struct {
	cfg     *Config
	exec    *command.Executor
	metrics *metric.Registry
	log     logger.Logger
	limiter *rateLimiter

	ln      net.Listener
	unixLn  net.Listener
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.Mutex
	conns map[*Conn]struct{}
}

// New creates a server executing commands against store. metrics and log
// may be nil.
func New(cfg *Config, store command.Store, metrics *metric.Registry, log logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		cfg:     cfg,
		exec:    command.NewExecutor(store, cfg.Protocol),
		metrics: metrics,
		log:     log.With("component", "redisserver"),
		conns:   make(map[*Conn]struct{}),
	}
	if cfg.RateLimit > 0 {
		s.limiter = newRateLimiter(cfg.RateLimit, cfg.Burst)
	}
	return s
}

// Start binds the listener and serves connections in the background. It
// returns once the listener is ready, so Addr is valid afterwards.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("redisserver: already started")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln

	if s.cfg.UnixSocket != "" {
		uln, err := listenUnix(s.cfg.UnixSocket, s.cfg.UnixSocketPerm)
		if err != nil {
			_ = ln.Close()
			s.ln = nil
			s.running.Store(false)
			return err
		}
		s.unixLn = uln
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.log.Info("redis server listening",
		"address", ln.Addr().String(),
		"unix_socket", s.cfg.UnixSocket,
		"protocol", int(s.exec.Protocol()),
	)

	if s.limiter != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.limiter.run(ctx, limiterSweepInterval, limiterIdleTTL)
		}()
	}

	for _, l := range s.listeners() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.acceptLoop(ctx, l); err != nil {
				s.log.Error("accept loop stopped", "address", l.Addr().String(), "error", err)
			}
		}()
	}
	return nil
}

func (s *Server) listeners() []net.Listener {
	if s.unixLn == nil {
		return []net.Listener{s.ln}
	}
	return []net.Listener{s.ln, s.unixLn}
}

// Addr returns the bound TCP address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// UnixAddr returns the Unix socket address, or nil when none is served.
func (s *Server) UnixAddr() net.Addr {
	if s.unixLn == nil {
		return nil
	}
	return s.unixLn.Addr()
}

// Shutdown stops accepting, closes every client connection and waits for
// the connection goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	var firstErr error
	for _, l := range s.listeners() {
		if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) && firstErr == nil {
			firstErr = err
		}
	}
	s.cancel()

	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.log.Info("redis server stopped")
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	var backoff time.Duration
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = nextBackoff(backoff)
				s.log.Warn("accept error, retrying", "error", err, "delay", backoff)
				time.Sleep(backoff)
				continue
			}
			return err
		}
		backoff = 0

		c := newConn(nc, s.cfg)
		if !s.track(c) {
			_ = c.Close()
			return nil
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(ctx, c)
		}()
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}

func (s *Server) track(c *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	s.metrics.ConnOpened()
	return true
}

func (s *Server) untrack(c *Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.metrics.ConnClosed()
}

// ActiveConns returns the number of open client connections.
func (s *Server) ActiveConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

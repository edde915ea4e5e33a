package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	return errors.Join(
		verifyServer(&cfg.Server),
		verifyStorage(&cfg.Storage),
		verifyLog(&cfg.Log),
	)
}

func verifyServer(cfg *ServerSection) error {
	var errs []error

	r := &cfg.Redis
	if err := verifyAddr("server.redis.addr", r.Addr); err != nil {
		errs = append(errs, err)
	}
	if r.UnixSocketPerm > 0o777 {
		errs = append(errs, fmt.Errorf("server.redis.unix_socket_perm must be at most 0777, got %#o", r.UnixSocketPerm))
	}
	if r.Protocol != 2 && r.Protocol != 3 {
		errs = append(errs, fmt.Errorf("server.redis.protocol must be 2 or 3, got %d", r.Protocol))
	}
	if r.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.redis.ratelimit must not be negative, got %v", r.RateLimit))
	}
	if r.Burst < 0 {
		errs = append(errs, fmt.Errorf("server.redis.burst must not be negative, got %d", r.Burst))
	}
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"read", r.Timeout.Read},
		{"write", r.Timeout.Write},
		{"idle", r.Timeout.Idle},
	}
	for _, t := range timeouts {
		if t.d < 0 {
			errs = append(errs, fmt.Errorf("server.redis.timeout.%s must not be negative", t.name))
		}
	}

	if cfg.Metrics.Enabled {
		if err := verifyAddr("server.metrics.addr", cfg.Metrics.Addr); err != nil {
			errs = append(errs, err)
		} else if samePort(cfg.Metrics.Addr, r.Addr) {
			errs = append(errs, fmt.Errorf("server.metrics.addr %q conflicts with server.redis.addr", cfg.Metrics.Addr))
		}
	}

	return errors.Join(errs...)
}

func verifyStorage(cfg *StorageSection) error {
	if !cmap.ValidShardCount(cfg.Shards) {
		return fmt.Errorf("storage.shards must be a positive power of two, got %d", cfg.Shards)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	var errs []error
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", cfg.Format))
	}
	return errors.Join(errs...)
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", key)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("%s: invalid port %q", key, port)
	}
	return nil
}

// samePort reports whether two listen addresses would collide. Port 0 never
// collides.
func samePort(a, b string) bool {
	ha, pa, _ := net.SplitHostPort(a)
	hb, pb, _ := net.SplitHostPort(b)
	if pa != pb || pa == "0" {
		return false
	}
	wildcard := func(h string) bool { return h == "" || h == "0.0.0.0" || h == "::" }
	return ha == hb || wildcard(ha) || wildcard(hb)
}

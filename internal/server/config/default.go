package config

import (
	"time"

	"github.com/yndnr/respkv/pkg/cmap"
)

// Default configuration values.
const (
	DefaultRedisAddr      = "0.0.0.0:6379"
	DefaultUnixSocketPerm = 0o700
	DefaultProtocol       = 2
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultIdleTimeout    = 5 * time.Minute
	DefaultMetricsAddr    = "127.0.0.1:9121"
	DefaultShards         = cmap.DefaultShardCount
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:           DefaultRedisAddr,
				UnixSocketPerm: DefaultUnixSocketPerm,
				Protocol:       DefaultProtocol,
				Timeout: TimeoutConfig{
					Read:  DefaultReadTimeout,
					Write: DefaultWriteTimeout,
					Idle:  DefaultIdleTimeout,
				},
			},
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    DefaultMetricsAddr,
			},
		},
		Storage: StorageSection{
			Shards: DefaultShards,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultValues returns Default as dotted koanf keys, for use as the
// lowest-priority configuration layer.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"server.redis.addr":             d.Server.Redis.Addr,
		"server.redis.unix_socket":      d.Server.Redis.UnixSocket,
		"server.redis.unix_socket_perm": d.Server.Redis.UnixSocketPerm,
		"server.redis.protocol":         d.Server.Redis.Protocol,
		"server.redis.ratelimit":        d.Server.Redis.RateLimit,
		"server.redis.burst":            d.Server.Redis.Burst,
		"server.redis.timeout.read":     d.Server.Redis.Timeout.Read.String(),
		"server.redis.timeout.write":    d.Server.Redis.Timeout.Write.String(),
		"server.redis.timeout.idle":     d.Server.Redis.Timeout.Idle.String(),
		"server.metrics.enabled":        d.Server.Metrics.Enabled,
		"server.metrics.addr":           d.Server.Metrics.Addr,
		"storage.shards":                d.Storage.Shards,
		"log.level":                     d.Log.Level,
		"log.format":                    d.Log.Format,
	}
}

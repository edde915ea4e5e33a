package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server" yaml:"server"`
	Storage StorageSection `koanf:"storage" yaml:"storage"`
	Log     LogSection     `koanf:"log" yaml:"log"`
}

// ServerSection configures the network endpoints.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis" yaml:"redis"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`

	// UnixSocket, when set, also serves on a Unix domain socket.
	UnixSocket string `koanf:"unix_socket" yaml:"unix_socket"`
	// UnixSocketPerm is the socket file mode, e.g. 0700.
	UnixSocketPerm uint32 `koanf:"unix_socket_perm" yaml:"unix_socket_perm"`

	// Protocol selects the reply dialect: 2 renders HGETALL as a flat
	// array, 3 as a map.
	Protocol int `koanf:"protocol" yaml:"protocol"`

	// RateLimit is the number of commands per second allowed per client IP.
	// Zero disables limiting.
	RateLimit float64 `koanf:"ratelimit" yaml:"ratelimit"`

	// Burst defaults to max(1, ceil(RateLimit)) when zero.
	Burst int `koanf:"burst" yaml:"burst"`

	Timeout TimeoutConfig `koanf:"timeout" yaml:"timeout"`
}

// TimeoutConfig holds per-connection deadlines. Zero disables a deadline.
type TimeoutConfig struct {
	// Read bounds the time to receive the rest of a frame once its first
	// byte has arrived.
	Read time.Duration `koanf:"read" yaml:"read"`
	// Write bounds a single reply write.
	Write time.Duration `koanf:"write" yaml:"write"`
	// Idle bounds the wait for the next request.
	Idle time.Duration `koanf:"idle" yaml:"idle"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
}

// StorageSection configures the in-memory backend.
type StorageSection struct {
	// Shards is the lock-stripe count per table; a power of two.
	Shards int `koanf:"shards" yaml:"shards"`
}

// LogSection configures logging. Level is reloaded live.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	// Server is an address (host[:port]) or the name of a saved connection.
	Server  string        `yaml:"server"`
	Output  string        `yaml:"output"` // text, table, json, yaml
	Timeout time.Duration `yaml:"timeout"`

	// Connections maps names to server addresses.
	Connections map[string]string `yaml:"connections,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:      "localhost:6379",
		Output:      "text",
		Timeout:     5 * time.Second,
		Connections: make(map[string]string),
	}
}

// ResolveServer returns the address saved under name, or name itself.
func (c *CLIConfig) ResolveServer(name string) string {
	if addr, ok := c.Connections[name]; ok {
		return addr
	}
	return name
}

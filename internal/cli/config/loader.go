package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/respkv/internal/cli/output"
)

// EnvPrefix prefixes the environment variables read by Merge.
const EnvPrefix = "RESPKV_CLI_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".respkv", "cli.yaml")
}

// Load loads CLI configuration from file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Connections == nil {
		cfg.Connections = make(map[string]string)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Validate reports every invalid setting.
func Validate(cfg *CLIConfig) error {
	var errs []error
	if cfg.Server == "" {
		errs = append(errs, errors.New("server must not be empty"))
	}
	if _, err := output.ParseFormat(cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout))
	}
	for name, addr := range cfg.Connections {
		if addr == "" {
			errs = append(errs, fmt.Errorf("connection %q has no address", name))
		}
	}
	return errors.Join(errs...)
}

// Set assigns one setting by key: server, output, timeout or
// connections.<name>.
func Set(cfg *CLIConfig, key, value string) error {
	switch {
	case key == "server":
		cfg.Server = value
	case key == "output":
		cfg.Output = value
	case key == "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	case strings.HasPrefix(key, "connections."):
		name := strings.TrimPrefix(key, "connections.")
		if name == "" {
			return errors.New("connection name must not be empty")
		}
		if cfg.Connections == nil {
			cfg.Connections = make(map[string]string)
		}
		if value == "" {
			delete(cfg.Connections, name)
		} else {
			cfg.Connections[name] = value
		}
	default:
		return fmt.Errorf("unknown key %q (want server, output, timeout or connections.<name>)", key)
	}
	return Validate(cfg)
}

// Merge overrides cfg with RESPKV_CLI_* environment variables and then
// with explicitly set flags. Flags are keyed like Set; env keys carry the
// prefix, e.g. RESPKV_CLI_SERVER, and unknown ones are ignored.
func Merge(cfg *CLIConfig, env map[string]string, flags map[string]string) (*CLIConfig, error) {
	for k, v := range env {
		key, ok := strings.CutPrefix(k, EnvPrefix)
		if !ok || v == "" {
			continue
		}
		key = strings.ToLower(key)
		if key != "server" && key != "output" && key != "timeout" {
			continue
		}
		if err := Set(cfg, key, v); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}
	for k, v := range flags {
		if err := Set(cfg, k, v); err != nil {
			return nil, fmt.Errorf("--%s: %w", k, err)
		}
	}
	return cfg, nil
}

// Environ returns the RESPKV_CLI_* variables of the process.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env
}
